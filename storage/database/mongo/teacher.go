package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/mahudhurio/core/teacher"
)

type teacherDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Code         string             `bson:"code"`
	SchoolID     string             `bson:"school_id"`
	PasswordHash []byte             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func newTeacherDoc(tch teacher.Teacher) teacherDoc {
	return teacherDoc{
		Name:         tch.Name,
		Email:        tch.Email,
		Code:         tch.Code,
		SchoolID:     tch.SchoolID,
		PasswordHash: tch.PasswordHash,
		CreatedAt:    tch.CreatedAt,
		UpdatedAt:    tch.UpdatedAt,
	}
}

func (doc teacherDoc) toTeacher() teacher.Teacher {
	return teacher.Teacher{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Email:        doc.Email,
		Code:         doc.Code,
		SchoolID:     doc.SchoolID,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

type teacherRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *mongo.Database) teacher.Repository {
	return &teacherRepository{
		col:      db.Collection(colTeachers),
		counters: db.Collection(colCounters),
	}
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	res, err := repo.col.InsertOne(ctx, newTeacherDoc(tch))
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "inserting teacher")
	}
	tch.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return tch, nil
}

func (repo *teacherRepository) GetTeacherByID(ctx context.Context, id string) (teacher.Teacher, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	return repo.getTeacher(ctx, bson.M{"_id": oid})
}

func (repo *teacherRepository) GetTeacherByEmail(ctx context.Context, email string) (teacher.Teacher, error) {
	return repo.getTeacher(ctx, bson.M{"email": email})
}

func (repo *teacherRepository) GetTeacherByCode(ctx context.Context, code string) (teacher.Teacher, error) {
	return repo.getTeacher(ctx, bson.M{"code": code})
}

// NextTeacherSeq does an atomic upserted $inc on the per-school counter
// document, so concurrent registrations never allocate the same code.
func (repo *teacherRepository) NextTeacherSeq(ctx context.Context, schoolID string) (int, error) {
	var doc struct {
		Seq int `bson:"seq"`
	}
	err := repo.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "teachers:" + schoolID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, errors.Wrap(err, "incrementing teacher counter")
	}
	return doc.Seq, nil
}

func (repo *teacherRepository) getTeacher(ctx context.Context, filter bson.M) (teacher.Teacher, error) {
	var doc teacherDoc
	if err := repo.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "finding teacher")
	}
	return doc.toTeacher(), nil
}
