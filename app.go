package main

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"meditrack/catalog"
	"meditrack/extract"
)

type App struct {
	cfg      Config
	mongo    *mongo.Client
	db       *mongo.Database
	users    *mongo.Collection
	store    *ReportStore
	cat      *catalog.Catalog
	ex       *extract.Extractor
	ocr      *ocrClient
	sessions *sessionRegistry
}

func newApp(ctx context.Context, cfg Config) (*App, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB)

	cat := catalog.Default()
	app := &App{
		cfg:      cfg,
		mongo:    client,
		db:       db,
		users:    db.Collection("users"),
		store:    NewReportStore(db.Collection("reports")),
		cat:      cat,
		ex:       extract.New(cat),
		ocr:      newOCRClient(cfg.OCRURI),
		sessions: newSessionRegistry(),
	}
	// Indexes
	if _, err := app.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return nil, err
	}
	if _, err := app.store.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: -1}},
	}); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) close(ctx context.Context) { _ = a.mongo.Disconnect(ctx) }
