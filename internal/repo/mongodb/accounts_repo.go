package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geocoder89/enrollhub/internal/domain/account"
	"github.com/geocoder89/enrollhub/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	backend               = "mongo"
	accountsCollection    = "users"
	enrollmentsCollection = "enrollments"
)

// withoutPassword is the projection used by every read that may reach a client.
var withoutPassword = bson.M{"password": 0}

// ObjectIDs grow with insertion time, so duplicate emails resolve to the oldest account.
var oldestFirst = options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

type accountDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FirstName     string             `bson:"firstName"`
	MiddleName    string             `bson:"middleName"`
	LastName      string             `bson:"lastName"`
	Email         string             `bson:"email"`
	ContactNumber string             `bson:"contactNumber"`
	Password      string             `bson:"password,omitempty"`
	Role          string             `bson:"role"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (d accountDoc) toAccount() account.Account {
	return account.Account{
		ID:            d.ID.Hex(),
		FirstName:     d.FirstName,
		MiddleName:    d.MiddleName,
		LastName:      d.LastName,
		Email:         d.Email,
		ContactNumber: d.ContactNumber,
		PasswordHash:  d.Password,
		Role:          d.Role,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func fromAccount(a account.Account) accountDoc {
	return accountDoc{
		FirstName:     a.FirstName,
		MiddleName:    a.MiddleName,
		LastName:      a.LastName,
		Email:         a.Email,
		ContactNumber: a.ContactNumber,
		Password:      a.PasswordHash,
		Role:          a.Role,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

type AccountsRepo struct {
	coll *mongo.Collection
	prom *observability.Prom
}

func NewAccountsRepo(db *mongo.Database, prom *observability.Prom) *AccountsRepo {
	return &AccountsRepo{
		coll: db.Collection(accountsCollection),
		prom: prom,
	}
}

func (r *AccountsRepo) Create(ctx context.Context, a account.Account) (account.Account, error) {
	var res *mongo.InsertOneResult

	err := r.prom.ObserveDB(backend, "accounts.create", func() error {
		var err error
		res, err = r.coll.InsertOne(ctx, fromAccount(a))
		return err
	})
	if err != nil {
		return account.Account{}, fmt.Errorf("insert account: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return account.Account{}, fmt.Errorf("insert account: unexpected id type %T", res.InsertedID)
	}
	a.ID = oid.Hex()

	return a, nil
}

func (r *AccountsRepo) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	var doc accountDoc

	err := r.prom.ObserveDB(backend, "accounts.get_by_email", func() error {
		return notFound(r.coll.FindOne(ctx, bson.M{"email": email}, oldestFirst).Decode(&doc))
	})
	if err != nil {
		return account.Account{}, err
	}

	return doc.toAccount(), nil
}

func (r *AccountsRepo) ListByEmail(ctx context.Context, email string) ([]account.Account, error) {
	var docs []accountDoc

	err := r.prom.ObserveDB(backend, "accounts.list_by_email", func() error {
		cur, err := r.coll.Find(ctx, bson.M{"email": email}, options.Find().SetProjection(withoutPassword))
		if err != nil {
			return err
		}
		return cur.All(ctx, &docs)
	})
	if err != nil {
		return nil, fmt.Errorf("find accounts by email: %w", err)
	}

	out := make([]account.Account, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toAccount())
	}
	return out, nil
}

func (r *AccountsRepo) GetProfile(ctx context.Context, id string) (account.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return account.Account{}, account.ErrNotFound
	}

	var doc accountDoc

	err = r.prom.ObserveDB(backend, "accounts.get_profile", func() error {
		res := r.coll.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(withoutPassword))
		return notFound(res.Decode(&doc))
	})
	if err != nil {
		return account.Account{}, err
	}

	return doc.toAccount(), nil
}

func (r *AccountsRepo) Update(ctx context.Context, id string, changes account.Changes) (account.Account, error) {
	if changes.IsEmpty() {
		return r.GetProfile(ctx, id)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return account.Account{}, account.ErrNotFound
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	var doc accountDoc

	err = r.prom.ObserveDB(backend, "accounts.update", func() error {
		res := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": setDocument(changes, time.Now().UTC())}, opts)
		return notFound(res.Decode(&doc))
	})
	if err != nil {
		return account.Account{}, err
	}

	return doc.toAccount(), nil
}

func (r *AccountsRepo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func setDocument(changes account.Changes, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}

	if changes.FirstName != nil {
		set["firstName"] = *changes.FirstName
	}
	if changes.LastName != nil {
		set["lastName"] = *changes.LastName
	}
	if changes.Email != nil {
		set["email"] = *changes.Email
	}
	if changes.ContactNumber != nil {
		set["contactNumber"] = *changes.ContactNumber
	}
	if changes.PasswordHash != nil {
		set["password"] = *changes.PasswordHash
	}

	return set
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return account.ErrNotFound
	}
	return err
}
