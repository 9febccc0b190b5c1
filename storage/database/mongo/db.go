package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/trezcool/mahudhurio/core"
)

// collection names
const (
	colSchools    = "schools"
	colTeachers   = "teachers"
	colStudents   = "students"
	colAttendance = "attendance"
	colFaceData   = "facedata"
	colLeaves     = "leaves"
	colCounters   = "counters"
)

// Open connects to the configured mongo deployment and pings it.
func Open(ctx context.Context, conf *core.Config) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Database.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "pinging mongo")
	}
	return client.Database(conf.Database.Name), nil
}

// EnsureIndexes creates the unique indexes the domain invariants rely on:
// the store is the sole arbiter of email/code uniqueness and of the
// one-record-per-(student, date) attendance key.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	for col, models := range map[string][]mongo.IndexModel{
		colSchools: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		},
		colTeachers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		},
		colStudents: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "teacher_id", Value: 1}}},
		},
		colAttendance: {
			{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "date", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
		colFaceData: {
			{Keys: bson.D{{Key: "student_id", Value: 1}}, Options: unique},
		},
		colLeaves: {
			{Keys: bson.D{{Key: "student_id", Value: 1}}},
		},
	} {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "creating %s indexes", col)
		}
	}
	return nil
}
