package transfer

import "time"

// SubscriptionEvent is the payment processor's webhook payload. Only the
// fields the subscription service reads are declared.
type SubscriptionEvent struct {
	ID        string `json:"id"`
	EventType string `json:"eventType"`
	CreatedAt int64  `json:"created_at"`
	Object    struct {
		ID      string `json:"id"`
		Product struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"product"`
		Customer struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"customer"`
		Status               string    `json:"status"`
		CurrentPeriodEndDate time.Time `json:"current_period_end_date"`
		Metadata             struct {
			PlanID       string `json:"plan_id"`
			BillingCycle string `json:"billing_cycle"`
		} `json:"metadata"`
	} `json:"object"`
}
