package scholarships

import (
	"context"
	"strconv"

	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/scholarsknowledge/server/pkg/structs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Scholarship struct {
	Id          scholid.ScholID `bson:"_id"`
	Title       string          `bson:"title"`
	Partner     string          `bson:"partner"`
	Description string          `bson:"description"`
	Continent   string          `bson:"continent,omitempty"`
	Country     string          `bson:"country,omitempty"`
	Amount      string          `bson:"amount,omitempty"`
	Deadline    int64           `bson:"deadline,omitempty"`
	Link        string          `bson:"link,omitempty"`
	AuthorId    scholid.ScholID `bson:"author"`
}

func CreateScholarship(
	authorId scholid.ScholID,
	title string,
	partner string,
	description string,
	continent string,
	country string,
	amount string,
	deadline int64,
	link string,
) (Scholarship, error) {
	s := Scholarship{
		Id:          scholid.GenId(),
		Title:       title,
		Partner:     partner,
		Description: description,
		Continent:   continent,
		Country:     country,
		Amount:      amount,
		Deadline:    deadline,
		Link:        link,
		AuthorId:    authorId,
	}

	if _, err := db.Scholarships.InsertOne(context.TODO(), s); err != nil {
		return s, err
	}

	return s, nil
}

func GetScholarship(id scholid.ScholID) (Scholarship, error) {
	var s Scholarship
	err := db.Scholarships.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		err = ErrScholarshipNotFound
	}
	return s, err
}

// ListScholarships returns listings newest first, optionally narrowed to a
// continent or country.
func ListScholarships(continent string, country string, skip int64, limit int64) ([]Scholarship, error) {
	filter := bson.M{}
	if continent != "" {
		filter["continent"] = continent
	}
	if country != "" {
		filter["country"] = country
	}

	opts := options.Find().SetSort(bson.M{"_id": -1}).SetSkip(skip).SetLimit(limit)
	cursor, err := db.Scholarships.Find(context.TODO(), filter, opts)
	if err != nil {
		return nil, err
	}

	listings := []Scholarship{}
	if err := cursor.All(context.TODO(), &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

type ScholarshipUpdate struct {
	Title       *string `bson:"title,omitempty"`
	Partner     *string `bson:"partner,omitempty"`
	Description *string `bson:"description,omitempty"`
	Continent   *string `bson:"continent,omitempty"`
	Country     *string `bson:"country,omitempty"`
	Amount      *string `bson:"amount,omitempty"`
	Deadline    *int64  `bson:"deadline,omitempty"`
	Link        *string `bson:"link,omitempty"`
}

func (s *Scholarship) Update(update ScholarshipUpdate) error {
	if _, err := db.Scholarships.UpdateByID(
		context.TODO(),
		s.Id,
		bson.M{"$set": update},
	); err != nil {
		return err
	}

	updated, err := GetScholarship(s.Id)
	if err != nil {
		return err
	}
	*s = updated

	return nil
}

func (s *Scholarship) Delete() error {
	_, err := db.Scholarships.DeleteOne(context.TODO(), bson.M{"_id": s.Id})
	return err
}

func (s *Scholarship) V0() structs.V0Scholarship {
	return structs.V0Scholarship{
		Id:          strconv.FormatInt(s.Id, 10),
		Title:       s.Title,
		Partner:     s.Partner,
		Description: s.Description,
		Continent:   s.Continent,
		Country:     s.Country,
		Amount:      s.Amount,
		Deadline:    s.Deadline,
		Link:        s.Link,
		AuthorId:    strconv.FormatInt(s.AuthorId, 10),
		CreatedAt:   scholid.Timestamp(s.Id),
	}
}
