package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"meditrack/models"
)

var errPatientRequired = errors.New("patient name is required")

// ReportStore persists reports scoped to their owning account. Reports are
// listed newest-first; index-based operations address that ordering.
type ReportStore struct {
	col *mongo.Collection
}

func NewReportStore(col *mongo.Collection) *ReportStore {
	return &ReportStore{col: col}
}

// Append inserts a report. Duplicates are allowed: the same report committed
// twice yields two records.
func (s *ReportStore) Append(ctx context.Context, r *models.Report) error {
	if r.PatientName == "" {
		return errPatientRequired
	}
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.Values == nil {
		r.Values = map[string]float64{}
	}
	_, err := s.col.InsertOne(ctx, r)
	return err
}

// ListAll returns every report owned by ownerID, newest date first.
func (s *ReportStore) ListAll(ctx context.Context, ownerID primitive.ObjectID) ([]models.Report, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "createdAt", Value: -1},
	})
	cur, err := s.col.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Report
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the index-th report of the newest-first listing.
func (s *ReportStore) Get(ctx context.Context, ownerID primitive.ObjectID, index int) (*models.Report, error) {
	reports, err := s.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(reports) {
		return nil, fmt.Errorf("report index %d out of range (have %d)", index, len(reports))
	}
	return &reports[index], nil
}

// DeleteIndex removes the index-th report of the newest-first listing.
func (s *ReportStore) DeleteIndex(ctx context.Context, ownerID primitive.ObjectID, index int) error {
	r, err := s.Get(ctx, ownerID, index)
	if err != nil {
		return err
	}
	_, err = s.col.DeleteOne(ctx, bson.M{"_id": r.ID, "ownerId": ownerID})
	return err
}
