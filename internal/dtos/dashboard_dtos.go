package dtos

// Versioned is implemented by every resource that carries an optimistic
// concurrency token. The token is the resource's `updated_at` timestamp,
// compared for equality only, never parsed for time arithmetic.
type Versioned interface {
	Version() string
}

// MenuItem is one row of a shop's menu sub-list. Rows whose Name is empty
// after trimming are dropped before submission, not rejected.
type MenuItem struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	DurationMin int    `json:"duration_min,omitempty"`
	Description string `json:"description,omitempty"`
}

// StaffRow is one row of the staff summary sub-list shown on the public
// shop page. The full therapist roster is a separate resource.
type StaffRow struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Headline string `json:"headline,omitempty"`
}

type ShopProfile struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name" validate:"required"`
	Area        string     `json:"area" validate:"required"`
	Address     string     `json:"address,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Description string     `json:"description,omitempty"`
	PriceMin    int        `json:"price_min,omitempty"`
	PriceMax    int        `json:"price_max,omitempty"`
	Menus       []MenuItem `json:"menus,omitempty"`
	Staff       []StaffRow `json:"staff,omitempty"`
	UpdatedAt   string     `json:"updated_at,omitempty"`
}

func (p ShopProfile) Version() string { return p.UpdatedAt }

type TherapistRecord struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name" validate:"required"`
	Biography    string   `json:"biography,omitempty"`
	Specialties  []string `json:"specialties,omitempty"`
	DisplayOrder int      `json:"display_order,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
}

func (t TherapistRecord) Version() string { return t.UpdatedAt }

// TherapistList is the roster as served by the backend, ordered by
// display_order ascending.
type TherapistList struct {
	Therapists []TherapistRecord `json:"therapists"`
	UpdatedAt  string            `json:"updated_at,omitempty"`
}

func (l TherapistList) Version() string { return l.UpdatedAt }

// ReorderAssignment pins one therapist to an explicit display_order slot.
// Orders are assigned in multiples of 10 to leave room for manual inserts.
type ReorderAssignment struct {
	ID           string `json:"id"`
	DisplayOrder int    `json:"display_order"`
}

type ReorderRequest struct {
	Therapists []ReorderAssignment `json:"therapists"`
}

type NotificationSettings struct {
	EmailEnabled    bool     `json:"email_enabled"`
	EmailRecipients []string `json:"email_recipients,omitempty"`
	LineEnabled     bool     `json:"line_enabled"`
	LineToken       string   `json:"line_notify_token,omitempty"`
	SlackEnabled    bool     `json:"slack_enabled"`
	SlackWebhookURL string   `json:"slack_webhook_url,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
}

func (n NotificationSettings) Version() string { return n.UpdatedAt }
