package v0_rest

import (
	structs "github.com/scholarsknowledge/server/pkg/structs"
)

type BaseResp struct {
	Error bool `json:"error"`
}

type ErrResp struct {
	Error  bool              `json:"error"`
	Type   string            `json:"type"`
	Fields map[string]string `json:"fields,omitempty"`

	// very special field only for logging in
	MFAMethods []string `json:"mfa_methods,omitempty"`
}

type ListResp struct {
	Error   bool        `json:"error"`
	Autoget interface{} `json:"autoget"`
	Page    int64       `json:"page#"`
	Pages   int64       `json:"pages"`
}

type StatusResp struct {
	RegistrationEnabled bool `json:"registrationEnabled"`
	RepairMode          bool `json:"isRepairMode"`
	IPBlocked           bool `json:"ipBlocked"`
}

type StatisticsResp struct {
	UserCount        int64 `json:"users"`
	PostCount        int64 `json:"posts"`
	ScholarshipCount int64 `json:"scholarships"`
}

type AuthResp struct {
	Error   bool `json:"error"`
	Account struct {
		structs.V0User
		structs.V0UserSettings
	} `json:"account"`
	Session structs.V0Session `json:"session"`
	Token   string            `json:"token"`
}

type MeResp struct {
	Error bool `json:"error"`
	structs.V0User
	structs.V0UserSettings
}

type VerifyEmailResp struct {
	Error bool   `json:"error"`
	Email string `json:"email"`
}

type NewTotpSecretResp struct {
	Error           bool   `json:"error"`
	Secret          string `json:"secret"`
	ProvisioningUri string `json:"provisioning_uri"`
	QRCodeSVG       string `json:"qr_code_svg"`
}

type NewMfaResp struct {
	Error         bool                     `json:"error"`
	Authenticator *structs.V0Authenticator `json:"authenticator,omitempty"`
	RecoveryCode  *string                  `json:"mfa_recovery_code,omitempty"`
}

type FeedResp struct {
	Error   bool             `json:"error"`
	Autoget []structs.V0Post `json:"autoget"`
	Page    int64            `json:"page#"`
}

type NotificationsResp struct {
	Error  bool             `json:"error"`
	Unseen int64            `json:"unseen"`
	Posts  []structs.V0Post `json:"posts"`
}

type UnseenCountResp struct {
	Error  bool  `json:"error"`
	Unseen int64 `json:"unseen"`
}

type ToastResp struct {
	Error bool            `json:"error"`
	Post  *structs.V0Post `json:"post"`
}

type UploadResp struct {
	Error bool   `json:"error"`
	Id    string `json:"id"`
	Mime  string `json:"mime"`
	Size  int64  `json:"size"`
}
