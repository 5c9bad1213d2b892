package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/geocoder89/enrollhub/internal/domain/enrollment"
	"github.com/geocoder89/enrollhub/internal/observability"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type enrollmentDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         primitive.ObjectID `bson:"userId"`
	EnrolledCourse string             `bson:"enrolledCourse"`
	TotalPrice     float64            `bson:"totalPrice"`
	EnrolledOn     time.Time          `bson:"enrolledOn"`
}

type EnrollmentsRepo struct {
	coll *mongo.Collection
	prom *observability.Prom
}

func NewEnrollmentsRepo(db *mongo.Database, prom *observability.Prom) *EnrollmentsRepo {
	return &EnrollmentsRepo{
		coll: db.Collection(enrollmentsCollection),
		prom: prom,
	}
}

func (r *EnrollmentsRepo) Create(ctx context.Context, req enrollment.CreateEnrollmentRequest) (enrollment.Enrollment, error) {
	e := enrollment.NewFromCreateRequest(req)

	if err := e.Validate(); err != nil {
		return enrollment.Enrollment{}, err
	}

	userID, err := primitive.ObjectIDFromHex(e.UserID)
	if err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("enrollment user id %q: %w", e.UserID, err)
	}

	doc := enrollmentDoc{
		UserID:         userID,
		EnrolledCourse: e.EnrolledCourse,
		TotalPrice:     e.TotalPrice,
		EnrolledOn:     e.EnrolledOn,
	}

	var res *mongo.InsertOneResult

	err = r.prom.ObserveDB(backend, "enrollments.create", func() error {
		var err error
		res, err = r.coll.InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("insert enrollment: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return enrollment.Enrollment{}, fmt.Errorf("insert enrollment: unexpected id type %T", res.InsertedID)
	}
	e.ID = oid.Hex()

	return e, nil
}
