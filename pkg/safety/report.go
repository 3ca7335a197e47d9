package safety

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

// Report statuses.
const (
	StatusPending       = "pending"
	StatusNoActionTaken = "no_action_taken"
	StatusActionTaken   = "action_taken"
)

type Report struct {
	Id           scholid.ScholID `bson:"_id"`
	Type         string          `bson:"type"` // "user" / "post"
	ContentId    scholid.ScholID `bson:"content"`
	SnapshotHash string          `bson:"snapshot"`
	ReporterId   scholid.ScholID `bson:"reporter"`
	Reason       string          `bson:"reason"`
	Comment      string          `bson:"comment"`
	Status       string          `bson:"status"`
}

func CreateReport(reportType string, contentId scholid.ScholID, reporterId scholid.ScholID, reason string, comment string) (Report, error) {
	var report Report
	var snapshot Snapshot
	var err error

	// Create snapshot
	if reportType == "user" {
		snapshot, err = CreateUserSnapshot(contentId)
	}
	if reportType == "post" {
		snapshot, err = CreatePostSnapshot(contentId)
	}
	if err != nil {
		return report, err
	}

	// Create report
	report = Report{
		Id:           scholid.GenId(),
		Type:         reportType,
		ContentId:    contentId,
		SnapshotHash: snapshot.Hash,
		ReporterId:   reporterId,
		Reason:       reason,
		Comment:      comment,
		Status:       StatusPending,
	}
	if _, err := db.Reports.InsertOne(context.TODO(), report); err != nil {
		return report, err
	}

	return report, nil
}

func GetReport(id scholid.ScholID) (Report, error) {
	var report Report
	err := db.Reports.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		err = ErrReportNotFound
	}
	return report, err
}

// ListReports returns reports for the admin queue, newest first, optionally
// filtered by status.
func ListReports(status string, skip int64, limit int64) ([]Report, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"_id": -1}).SetSkip(skip).SetLimit(limit)
	cursor, err := db.Reports.Find(context.TODO(), filter, opts)
	if err != nil {
		return nil, err
	}

	reports := []Report{}
	if err := cursor.All(context.TODO(), &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *Report) SetStatus(status string) error {
	r.Status = status
	_, err := db.Reports.UpdateByID(
		context.TODO(),
		r.Id,
		bson.M{"$set": bson.M{"status": status}},
	)
	return err
}

// this is for the reporter, not admin
func (r *Report) V0() structs.V0Report {
	return structs.V0Report{
		Id:        strconv.FormatInt(r.Id, 10),
		Type:      r.Type,
		ContentId: strconv.FormatInt(r.ContentId, 10),
		Content:   nil,
		Reason:    r.Reason,
		Comment:   r.Comment,
		Time:      scholid.Timestamp(r.Id) / 1000,
		Status:    r.Status,
	}
}
