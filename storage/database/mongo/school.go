package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/school"
)

type schoolDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Code      string             `bson:"code"`
	Address   string             `bson:"address"`
	Latitude  float64            `bson:"latitude"`
	Longitude float64            `bson:"longitude"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func newSchoolDoc(sch school.School) schoolDoc {
	return schoolDoc{
		Name:      sch.Name,
		Code:      sch.Code,
		Address:   sch.Address,
		Latitude:  sch.Location.Latitude,
		Longitude: sch.Location.Longitude,
		CreatedAt: sch.CreatedAt,
		UpdatedAt: sch.UpdatedAt,
	}
}

func (doc schoolDoc) toSchool() school.School {
	return school.School{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Code:      doc.Code,
		Address:   doc.Address,
		Location:  core.Location{Latitude: doc.Latitude, Longitude: doc.Longitude},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

type schoolRepository struct {
	col *mongo.Collection
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *mongo.Database) school.Repository {
	return &schoolRepository{col: db.Collection(colSchools)}
}

func (repo *schoolRepository) CreateSchool(ctx context.Context, sch school.School) (school.School, error) {
	doc := newSchoolDoc(sch)
	res, err := repo.col.InsertOne(ctx, doc)
	if err != nil {
		return school.School{}, errors.Wrap(err, "inserting school")
	}
	sch.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return sch, nil
}

func (repo *schoolRepository) GetSchoolByID(ctx context.Context, id string) (school.School, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return school.School{}, school.ErrNotFound
	}
	return repo.getSchool(ctx, bson.M{"_id": oid})
}

func (repo *schoolRepository) GetSchoolByCode(ctx context.Context, code string) (school.School, error) {
	return repo.getSchool(ctx, bson.M{"code": code})
}

func (repo *schoolRepository) GetSchoolByNameOrCode(ctx context.Context, name, code string) (school.School, error) {
	return repo.getSchool(ctx, bson.M{"$or": bson.A{bson.M{"name": name}, bson.M{"code": code}}})
}

func (repo *schoolRepository) QueryAllSchools(ctx context.Context) ([]school.School, error) {
	cur, err := repo.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "querying schools")
	}
	var docs []schoolDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding schools")
	}
	schools := make([]school.School, 0, len(docs))
	for _, doc := range docs {
		schools = append(schools, doc.toSchool())
	}
	return schools, nil
}

func (repo *schoolRepository) getSchool(ctx context.Context, filter bson.M) (school.School, error) {
	var doc schoolDoc
	if err := repo.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return school.School{}, school.ErrNotFound
		}
		return school.School{}, errors.Wrap(err, "finding school")
	}
	return doc.toSchool(), nil
}
