package application

// CreateSubscriptionCommand is the raw input of a new subscription as typed by
// the user. Amount and RenewalDate stay strings until the service parses them.
type CreateSubscriptionCommand struct {
	Name          string `field:"name" validate:"required,max=120"`
	Amount        string `field:"amount" validate:"required,numeric"`
	Type          string `field:"type" validate:"omitempty,oneof=personal business"`
	RenewalDate   string `field:"renewal_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string `field:"payment_method" validate:"max=80"`
}

type ChangeStatusCommand struct {
	Ref    string `field:"id" validate:"required"`
	Status string `field:"status" validate:"required,oneof=active paused cancelled"`
	Note   string `field:"note" validate:"max=200"`
}

type ChangePriceCommand struct {
	Ref    string `field:"id" validate:"required"`
	Amount string `field:"amount" validate:"required,numeric"`
	Note   string `field:"note" validate:"max=200"`
}

// ManualPriceNote is the note the CLI records when a price is edited by hand
// without an explicit note.
const ManualPriceNote = "Price updated manually"
