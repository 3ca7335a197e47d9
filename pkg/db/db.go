package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var Database *mongo.Database

var (
	Config          *mongo.Collection
	Accounts        *mongo.Collection
	Users           *mongo.Collection
	UserSettings    *mongo.Collection
	Sessions        *mongo.Collection
	Netblock        *mongo.Collection
	StudentPosts    *mongo.Collection
	LecturerPosts   *mongo.Collection
	PostLikes       *mongo.Collection
	Watermarks      *mongo.Collection
	Scholarships    *mongo.Collection
	AttachmentBlobs *mongo.Collection
	Reports         *mongo.Collection
	ReportSnapshots *mongo.Collection
)

func Init(uri string, database string) error {
	var err error

	// Connect to MongoDB
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	Client, err = mongo.Connect(context.TODO(), opts)
	if err != nil {
		return err
	}

	// Ping MongoDB
	var result bson.M
	if err := Client.Database("admin").RunCommand(context.TODO(), bson.D{{Key: "ping", Value: 1}}).Decode(&result); err != nil {
		return err
	}

	// Set database
	Database = Client.Database(database)

	// Set collections
	Config = Database.Collection("config")
	Accounts = Database.Collection("accounts")
	Users = Database.Collection("users")
	UserSettings = Database.Collection("user_settings")
	Sessions = Database.Collection("sessions")
	Netblock = Database.Collection("netblock")
	StudentPosts = Database.Collection("student_posts")
	LecturerPosts = Database.Collection("lecturer_posts")
	PostLikes = Database.Collection("post_likes")
	Watermarks = Database.Collection("notification_watermarks")
	Scholarships = Database.Collection("scholarships")
	AttachmentBlobs = Database.Collection("attachment_blobs")
	Reports = Database.Collection("reports")
	ReportSnapshots = Database.Collection("report_snapshots")

	return nil
}
