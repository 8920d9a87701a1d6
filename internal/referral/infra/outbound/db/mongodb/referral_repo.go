package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	referralDomain "github.com/davicafu/consentlab/internal/referral/domain"
)

// ReferralRepoMongoDB lee las consultas internas de la colección "referrals".
type ReferralRepoMongoDB struct {
	coll *mongo.Collection
}

// Connect abre el cliente y comprueba que el servidor responde.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}
	return client, nil
}

func NewReferralRepoMongoDB(client *mongo.Client, dbName string) *ReferralRepoMongoDB {
	return &ReferralRepoMongoDB{coll: client.Database(dbName).Collection("referrals")}
}

// --- Structs de BSON para el mapeo ---
// Se definen localmente para no "contaminar" el dominio con tags de BSON.

type mongoReferral struct {
	ID             string                `bson:"_id"`
	ApplicationRef string                `bson:"applicationRef"`
	Department     string                `bson:"department"`
	Status         referralDomain.Status `bson:"status"`
	AssignedTo     string                `bson:"assignedTo"`
	DueDate        time.Time             `bson:"dueDate"`
	LastModified   time.Time             `bson:"lastModified"`
}

func toMongoReferral(r referralDomain.Referral) mongoReferral {
	return mongoReferral{
		ID:             r.ID,
		ApplicationRef: r.ApplicationRef,
		Department:     r.Department,
		Status:         r.Status,
		AssignedTo:     r.AssignedTo,
		DueDate:        r.DueDate.UTC(),
		LastModified:   r.LastModified.UTC(),
	}
}

func (m mongoReferral) toDomain() referralDomain.Referral {
	return referralDomain.Referral{
		ID:             m.ID,
		ApplicationRef: m.ApplicationRef,
		Department:     m.Department,
		Status:         m.Status,
		AssignedTo:     m.AssignedTo,
		DueDate:        m.DueDate.UTC(),
		LastModified:   m.LastModified.UTC(),
	}
}

// FetchAll devuelve todas las consultas por fecha límite.
func (r *ReferralRepoMongoDB) FetchAll(ctx context.Context) ([]referralDomain.Referral, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoReferral
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}

	refs := make([]referralDomain.Referral, 0, len(docs))
	for _, d := range docs {
		refs = append(refs, d.toDomain())
	}
	return refs, nil
}

// Seed hace upsert de las consultas con un único BulkWrite.
func (r *ReferralRepoMongoDB) Seed(ctx context.Context, refs []referralDomain.Referral) error {
	if len(refs) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(refs))
	for _, ref := range refs {
		if err := ref.Validate(); err != nil {
			return err
		}
		doc := toMongoReferral(ref)
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	if _, err := r.coll.BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("mongo bulk write: %w", err)
	}
	return nil
}

var _ referralDomain.ReferralRepository = (*ReferralRepoMongoDB)(nil)
