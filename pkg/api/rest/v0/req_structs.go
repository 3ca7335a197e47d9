package v0_rest

type LoginReq struct {
	Username     string `json:"username" validate:"required"`
	Password     string `json:"password" validate:"required"`
	TotpCode     string `json:"totp_code"`
	RecoveryCode string `json:"mfa_recovery_code"`
}

type RegisterReq struct {
	Username string `json:"username" validate:"required,min=1,max=32"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=student lecturer"`
}

type VerifyEmailReq struct {
	Token string `json:"token" validate:"required,max=1024"`
}

type RecoverReq struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type ResetPasswordReq struct {
	Token    string `json:"token" validate:"required,max=1024"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateProfileReq struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=1,max=64"`
	University  *string `json:"university" validate:"omitempty,max=128"`
	Faculty     *string `json:"faculty" validate:"omitempty,max=128"`
	Program     *string `json:"program" validate:"omitempty,max=128"`
	Year        *string `json:"year" validate:"omitempty,max=32"`
	Continent   *string `json:"continent" validate:"omitempty,max=32"`
	Country     *string `json:"country" validate:"omitempty,max=64"`
}

type UpdateSettingsReq struct {
	ShareWithPartners *bool `json:"share_with_partners"`
	EmailUpdates      *bool `json:"email_updates"`
	FacultyOnlyFeed   *bool `json:"faculty_only_feed"`
}

type AccountVerificationReq struct {
	Password string `json:"password" validate:"required"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"old" validate:"required"`
	NewPassword string `json:"new" validate:"required,min=8"`
}

type AddAuthenticatorReq struct {
	AccountVerificationReq

	Type     string `json:"type" validate:"required"`
	Nickname string `json:"nickname" validate:"max=32"`

	TotpSecret string `json:"totp_secret" validate:"max=64"`
	TotpCode   string `json:"totp_code" validate:"min=6,max=6"`
}

type CreatePostReq struct {
	Audience string  `json:"audience" validate:"required,max=512"`
	Type     string  `json:"type" validate:"required,max=32"`
	Title    string  `json:"title" validate:"max=256"`
	Html     string  `json:"html" validate:"max=20000"`
	Images   []V0Att `json:"images" validate:"max=10,dive"`
	Files    []V0Att `json:"files" validate:"max=10,dive"`
}

// V0Att is an attachment descriptor as submitted by a client.
type V0Att struct {
	Id    string `json:"id" validate:"required,max=64"`
	Name  string `json:"name" validate:"max=256"`
	Mime  string `json:"mime" validate:"max=128"`
	Thumb []byte `json:"thumb,omitempty" validate:"omitempty,max=65536"`
}

type CreateCommentReq struct {
	Text   string  `json:"text" validate:"required,max=4000"`
	Images []V0Att `json:"images" validate:"max=4,dive"`
	Files  []V0Att `json:"files" validate:"max=4,dive"`
}

type CreateReportReq struct {
	Reason  string `json:"reason" validate:"max=2000"`
	Comment string `json:"comment" validate:"max=2000"`
}

type CreateScholarshipReq struct {
	Title       string `json:"title" validate:"required,max=256"`
	Partner     string `json:"partner" validate:"max=128"`
	Description string `json:"description" validate:"max=10000"`
	Continent   string `json:"continent" validate:"max=32"`
	Country     string `json:"country" validate:"max=64"`
	Amount      string `json:"amount" validate:"max=64"`
	Deadline    int64  `json:"deadline"`
	Link        string `json:"link" validate:"omitempty,url,max=512"`
}

type UpdateScholarshipReq struct {
	Title       *string `json:"title" validate:"omitempty,max=256"`
	Partner     *string `json:"partner" validate:"omitempty,max=128"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	Continent   *string `json:"continent" validate:"omitempty,max=32"`
	Country     *string `json:"country" validate:"omitempty,max=64"`
	Amount      *string `json:"amount" validate:"omitempty,max=64"`
	Deadline    *int64  `json:"deadline"`
	Link        *string `json:"link" validate:"omitempty,url,max=512"`
}

type CreateNetblockReq struct {
	Address   string `json:"address" validate:"required,cidr"`
	ExpiresAt int64  `json:"expires_at"`
}

type UpdateReportReq struct {
	Status string `json:"status" validate:"required,oneof=pending no_action_taken action_taken"`
}
