package mongo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/domain"
)

const identityCollection = "members"

// IdentityRepository persists members in the members collection. Legacy
// documents use mixed shapes for roles (bare strings or {name: ...} objects)
// and shares (number or string); both are normalised here so the rest of the
// system sees exactly one representation.
type IdentityRepository struct {
	coll *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{coll: db.Collection(identityCollection)}
}

type memberDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name,omitempty"`
	Status       string             `bson:"status"`
	Role         string             `bson:"role"`
	Roles        []bson.RawValue    `bson:"roles,omitempty"`
	Shares       bson.RawValue      `bson:"shares,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	doc := bson.M{
		"email":         identity.Email,
		"name":          identity.Name,
		"status":        identity.Status,
		"role":          identity.Role,
		"roles":         identity.Roles,
		"shares":        identity.Shares,
		"password_hash": identity.PasswordHash,
		"created_at":    identity.CreatedAt.Unix(),
		"updated_at":    identity.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}

	created := *identity
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *IdentityRepository) FindByID(ctx context.Context, id string) (*domain.Identity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrIdentityNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *IdentityRepository) findOne(ctx context.Context, filter bson.M) (*domain.Identity, error) {
	var doc memberDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}

	return &domain.Identity{
		ID:           doc.ID.Hex(),
		Email:        doc.Email,
		Name:         doc.Name,
		Status:       doc.Status,
		Role:         doc.Role,
		Roles:        decodeRoles(doc.Roles),
		Shares:       decodeShares(doc.Shares),
		PasswordHash: doc.PasswordHash,
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}, nil
}

// EnsureIndexes creates the unique email index. Called once at startup.
func (r *IdentityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// decodeRoles accepts both legacy shapes: a bare role-name string and an
// object with a name field.
func decodeRoles(raw []bson.RawValue) []string {
	if len(raw) == 0 {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, rv := range raw {
		switch rv.Type {
		case bson.TypeString:
			if s, ok := rv.StringValueOK(); ok && s != "" {
				roles = append(roles, s)
			}
		case bson.TypeEmbeddedDocument:
			var obj struct {
				Name string `bson:"name"`
			}
			if err := rv.Unmarshal(&obj); err == nil && obj.Name != "" {
				roles = append(roles, obj.Name)
			}
		}
	}
	if len(roles) == 0 {
		return nil
	}
	return roles
}

// decodeShares accepts numeric and string-encoded balances; anything missing
// or non-numeric defaults to 0.
func decodeShares(raw bson.RawValue) float64 {
	switch raw.Type {
	case bson.TypeDouble:
		if v, ok := raw.DoubleOK(); ok {
			return v
		}
	case bson.TypeInt32:
		if v, ok := raw.Int32OK(); ok {
			return float64(v)
		}
	case bson.TypeInt64:
		if v, ok := raw.Int64OK(); ok {
			return float64(v)
		}
	case bson.TypeString:
		if s, ok := raw.StringValueOK(); ok {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				return v
			}
		}
	}
	return 0
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
