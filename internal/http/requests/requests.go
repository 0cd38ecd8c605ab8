package request

// Binding targets for the JSON bodies the API accepts.

type Signup struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Signin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfile struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Bio          string `json:"bio"`
	Skills       string `json:"skills"`
	ProfileImage string `json:"profile_image"`
}

type PostTask struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	BudgetMin       *int     `json:"budget_min"`
	BudgetMax       *int     `json:"budget_max"`
	Urgency         string   `json:"urgency"`
	LocationAddress string   `json:"location_address"`
	LocationLat     *float64 `json:"location_lat"`
	LocationLng     *float64 `json:"location_lng"`
}

type SubmitBid struct {
	TaskID    string  `json:"task_id"`
	BidAmount float64 `json:"bid_amount"`
	Message   string  `json:"message"`
}

type SendMessage struct {
	TaskID     string `json:"task_id"`
	ReceiverID string `json:"receiver_id"`
	Message    string `json:"message"`
}

type SubmitCompletion struct {
	TaskID          string `json:"task_id"`
	CompletionNote  string `json:"completion_note"`
	CompletionFiles string `json:"completion_files"`
}

type ReviewCompletion struct {
	Approve  bool   `json:"approve"`
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

type SubmitReview struct {
	TaskID     string `json:"task_id"`
	RevieweeID string `json:"reviewee_id"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
}

type CreateOrder struct {
	Amount int `json:"amount"`
}
