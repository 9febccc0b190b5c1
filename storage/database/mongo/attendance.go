package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

type locationDoc struct {
	Latitude  float64 `bson:"latitude"`
	Longitude float64 `bson:"longitude"`
}

type attendanceDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	StudentID string             `bson:"student_id"`
	Date      time.Time          `bson:"date"`
	Status    attendance.Status  `bson:"status"`
	Method    attendance.Method  `bson:"method"`
	Location  *locationDoc       `bson:"location,omitempty"`
	MarkedAt  time.Time          `bson:"marked_at"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func newAttendanceDoc(att attendance.Attendance) attendanceDoc {
	doc := attendanceDoc{
		StudentID: att.StudentID,
		Date:      att.Date,
		Status:    att.Status,
		Method:    att.Method,
		MarkedAt:  att.MarkedAt,
		CreatedAt: att.CreatedAt,
		UpdatedAt: att.UpdatedAt,
	}
	if att.Location != nil {
		doc.Location = &locationDoc{Latitude: att.Location.Latitude, Longitude: att.Location.Longitude}
	}
	return doc
}

func (doc attendanceDoc) toAttendance() attendance.Attendance {
	att := attendance.Attendance{
		ID:        doc.ID.Hex(),
		StudentID: doc.StudentID,
		Date:      doc.Date,
		Status:    doc.Status,
		Method:    doc.Method,
		MarkedAt:  doc.MarkedAt,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if doc.Location != nil {
		att.Location = &core.Location{Latitude: doc.Location.Latitude, Longitude: doc.Location.Longitude}
	}
	return att
}

type faceDataDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	StudentID   string             `bson:"student_id"`
	Descriptors [][]float64        `bson:"descriptors"`
	PhotoURL    string             `bson:"photo_url,omitempty"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (doc faceDataDoc) toFaceData() attendance.FaceData {
	return attendance.FaceData{
		ID:          doc.ID.Hex(),
		StudentID:   doc.StudentID,
		Descriptors: doc.Descriptors,
		PhotoURL:    doc.PhotoURL,
		UpdatedAt:   doc.UpdatedAt,
	}
}

type attendanceRepository struct {
	col      *mongo.Collection
	faceData *mongo.Collection
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *mongo.Database) attendance.Repository {
	return &attendanceRepository{
		col:      db.Collection(colAttendance),
		faceData: db.Collection(colFaceData),
	}
}

func (repo *attendanceRepository) GetAttendance(ctx context.Context, studentID string, date time.Time) (attendance.Attendance, error) {
	var doc attendanceDoc
	err := repo.col.FindOne(ctx, bson.M{"student_id": studentID, "date": date}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return attendance.Attendance{}, attendance.ErrNotFound
		}
		return attendance.Attendance{}, errors.Wrap(err, "finding attendance")
	}
	return doc.toAttendance(), nil
}

func (repo *attendanceRepository) CreateAttendance(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	res, err := repo.col.InsertOne(ctx, newAttendanceDoc(att))
	if err != nil {
		return attendance.Attendance{}, errors.Wrap(err, "inserting attendance")
	}
	att.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return att, nil
}

func (repo *attendanceRepository) UpdateAttendance(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	oid, err := primitive.ObjectIDFromHex(att.ID)
	if err != nil {
		return attendance.Attendance{}, attendance.ErrNotFound
	}
	doc := newAttendanceDoc(att)
	res, err := repo.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return attendance.Attendance{}, errors.Wrap(err, "updating attendance")
	}
	if res.MatchedCount == 0 {
		return attendance.Attendance{}, attendance.ErrNotFound
	}
	return att, nil
}

func (repo *attendanceRepository) FilterAttendance(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	query := bson.M{}
	if filter.StudentIDs != nil {
		query["student_id"] = bson.M{"$in": filter.StudentIDs}
	}
	dateRange := bson.M{}
	if !filter.From.IsZero() {
		dateRange["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		dateRange["$lte"] = filter.To
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "marked_at", Value: -1}})
	cur, err := repo.col.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance")
	}
	var docs []attendanceDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding attendance")
	}
	records := make([]attendance.Attendance, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.toAttendance())
	}
	return records, nil
}

func (repo *attendanceRepository) SaveFaceData(ctx context.Context, fd attendance.FaceData) (attendance.FaceData, error) {
	update := bson.M{"$set": bson.M{
		"descriptors": fd.Descriptors,
		"photo_url":   fd.PhotoURL,
		"updated_at":  fd.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc faceDataDoc
	err := repo.faceData.FindOneAndUpdate(ctx, bson.M{"student_id": fd.StudentID}, update, opts).Decode(&doc)
	if err != nil {
		return attendance.FaceData{}, errors.Wrap(err, "saving face data")
	}
	return doc.toFaceData(), nil
}

func (repo *attendanceRepository) GetFaceDataByStudent(ctx context.Context, studentID string) (attendance.FaceData, error) {
	var doc faceDataDoc
	err := repo.faceData.FindOne(ctx, bson.M{"student_id": studentID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return attendance.FaceData{}, attendance.ErrFaceDataNotFound
		}
		return attendance.FaceData{}, errors.Wrap(err, "finding face data")
	}
	return doc.toFaceData(), nil
}
