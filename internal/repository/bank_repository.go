// Package repository provides the optional MongoDB source for the question
// bank. The bank is read-only input data; nothing here ever writes.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"assessment-service/internal/models"
)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// bankDocument is one category of the bank: the document id is the
// "<domain>_<difficulty>" category key.
type bankDocument struct {
	Category  string            `bson:"_id"`
	Questions []models.Question `bson:"questions"`
}

type BankRepository struct {
	col *mongo.Collection
}

func NewBankRepository(db *mongo.Database) *BankRepository {
	return &BankRepository{col: db.Collection("question_bank")}
}

// LoadAll fetches every category document and returns the category-keyed
// question lists the bank is built from.
func (r *BankRepository) LoadAll(ctx context.Context) (map[string][]models.Question, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	defer cur.Close(ctx)

	questions := make(map[string][]models.Question)
	for cur.Next(ctx) {
		var doc bankDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode bank category: %w", err)
		}
		questions[doc.Category] = doc.Questions
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return questions, nil
}
