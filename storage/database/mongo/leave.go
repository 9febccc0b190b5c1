package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/mahudhurio/core/leave"
)

type leaveDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	StudentID  string             `bson:"student_id"`
	StartDate  time.Time          `bson:"start_date"`
	EndDate    time.Time          `bson:"end_date"`
	Reason     string             `bson:"reason"`
	Status     leave.Status       `bson:"status"`
	ApprovedBy string             `bson:"approved_by,omitempty"`
	Comments   string             `bson:"comments,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func newLeaveDoc(lv leave.Leave) leaveDoc {
	return leaveDoc{
		StudentID:  lv.StudentID,
		StartDate:  lv.StartDate,
		EndDate:    lv.EndDate,
		Reason:     lv.Reason,
		Status:     lv.Status,
		ApprovedBy: lv.ApprovedBy,
		Comments:   lv.Comments,
		CreatedAt:  lv.CreatedAt,
		UpdatedAt:  lv.UpdatedAt,
	}
}

func (doc leaveDoc) toLeave() leave.Leave {
	return leave.Leave{
		ID:         doc.ID.Hex(),
		StudentID:  doc.StudentID,
		StartDate:  doc.StartDate,
		EndDate:    doc.EndDate,
		Reason:     doc.Reason,
		Status:     doc.Status,
		ApprovedBy: doc.ApprovedBy,
		Comments:   doc.Comments,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

type leaveRepository struct {
	col *mongo.Collection
}

var _ leave.Repository = (*leaveRepository)(nil) // interface compliance check

func NewLeaveRepository(db *mongo.Database) leave.Repository {
	return &leaveRepository{col: db.Collection(colLeaves)}
}

func (repo *leaveRepository) CreateLeave(ctx context.Context, lv leave.Leave) (leave.Leave, error) {
	res, err := repo.col.InsertOne(ctx, newLeaveDoc(lv))
	if err != nil {
		return leave.Leave{}, errors.Wrap(err, "inserting leave")
	}
	lv.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return lv, nil
}

func (repo *leaveRepository) GetLeaveByID(ctx context.Context, id string) (leave.Leave, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return leave.Leave{}, leave.ErrNotFound
	}
	var doc leaveDoc
	if err = repo.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return leave.Leave{}, leave.ErrNotFound
		}
		return leave.Leave{}, errors.Wrap(err, "finding leave")
	}
	return doc.toLeave(), nil
}

func (repo *leaveRepository) UpdateLeave(ctx context.Context, lv leave.Leave) (leave.Leave, error) {
	oid, err := primitive.ObjectIDFromHex(lv.ID)
	if err != nil {
		return leave.Leave{}, leave.ErrNotFound
	}
	res, err := repo.col.ReplaceOne(ctx, bson.M{"_id": oid}, newLeaveDoc(lv))
	if err != nil {
		return leave.Leave{}, errors.Wrap(err, "updating leave")
	}
	if res.MatchedCount == 0 {
		return leave.Leave{}, leave.ErrNotFound
	}
	return lv, nil
}

func (repo *leaveRepository) FilterLeavesByStudents(ctx context.Context, studentIDs []string) ([]leave.Leave, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := repo.col.Find(ctx, bson.M{"student_id": bson.M{"$in": studentIDs}}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "querying leaves")
	}
	var docs []leaveDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding leaves")
	}
	leaves := make([]leave.Leave, 0, len(docs))
	for _, doc := range docs {
		leaves = append(leaves, doc.toLeave())
	}
	return leaves, nil
}
