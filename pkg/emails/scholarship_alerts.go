package emails

import (
	"context"
	"log"

	"github.com/getsentry/sentry-go"
	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/users"
	"go.mongodb.org/mongo-driver/bson"
)

// SendScholarshipAlerts mails every opted-in user whose region matches a
// freshly published listing. A listing without a region matches everyone.
func SendScholarshipAlerts(continent string, country string) {
	cursor, err := db.UserSettings.Find(context.TODO(), bson.M{"email_updates": true})
	if err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		return
	}

	var optedIn []users.Settings
	if err := cursor.All(context.TODO(), &optedIn); err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		return
	}

	for _, settings := range optedIn {
		user, err := users.GetUser(settings.UserId)
		if err != nil {
			continue
		}
		if continent != "" && user.Continent != continent {
			continue
		}
		if country != "" && user.Country != country {
			continue
		}

		account, err := users.GetAccount(user.Id)
		if err != nil || account.Email == "" || !account.EmailVerified {
			continue
		}

		SendEmail("scholarship_alert", user.Username, account.Email, "")
	}
}
