package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/mahudhurio/core/student"
)

type studentDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	ParentEmail  string             `bson:"parent_email"`
	ParentPhone  string             `bson:"parent_phone,omitempty"`
	SchoolID     string             `bson:"school_id"`
	TeacherID    string             `bson:"teacher_id"`
	PasswordHash []byte             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func newStudentDoc(std student.Student) studentDoc {
	return studentDoc{
		Name:         std.Name,
		Email:        std.Email,
		ParentEmail:  std.ParentEmail,
		ParentPhone:  std.ParentPhone,
		SchoolID:     std.SchoolID,
		TeacherID:    std.TeacherID,
		PasswordHash: std.PasswordHash,
		CreatedAt:    std.CreatedAt,
		UpdatedAt:    std.UpdatedAt,
	}
}

func (doc studentDoc) toStudent() student.Student {
	return student.Student{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Email:        doc.Email,
		ParentEmail:  doc.ParentEmail,
		ParentPhone:  doc.ParentPhone,
		SchoolID:     doc.SchoolID,
		TeacherID:    doc.TeacherID,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

type studentRepository struct {
	col *mongo.Collection
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *mongo.Database) student.Repository {
	return &studentRepository{col: db.Collection(colStudents)}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	res, err := repo.col.InsertOne(ctx, newStudentDoc(std))
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	std.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return std, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return student.Student{}, student.ErrNotFound
	}
	return repo.getStudent(ctx, bson.M{"_id": oid})
}

func (repo *studentRepository) GetStudentByEmail(ctx context.Context, email string) (student.Student, error) {
	return repo.getStudent(ctx, bson.M{"email": email})
}

func (repo *studentRepository) FilterStudentsByTeacher(ctx context.Context, teacherID string) ([]student.Student, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := repo.col.Find(ctx, bson.M{"teacher_id": teacherID}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	var docs []studentDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding students")
	}
	students := make([]student.Student, 0, len(docs))
	for _, doc := range docs {
		students = append(students, doc.toStudent())
	}
	return students, nil
}

func (repo *studentRepository) getStudent(ctx context.Context, filter bson.M) (student.Student, error) {
	var doc studentDoc
	if err := repo.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "finding student")
	}
	return doc.toStudent(), nil
}
