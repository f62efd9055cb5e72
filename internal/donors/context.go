package donors

import (
	"fmt"
	"strings"
)

// Context renders the donor profile and donation history that gets handed to
// the conversational engine. Unresolved donors get the new-donor text.
func Context(id int) string {
	donations := Donations[id]
	if len(donations) == 0 {
		return "\nThis appears to be a new donor with no previous donation history in our system.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nDonor Information:\nName: %s\nPhone: %s\nEmail: %s\n\nDonation History:\n",
		donations[0].DonorName, Phones[id], Emails[id])
	for _, d := range donations {
		status := "Pending - Will be sent within 24 hours"
		if d.ReceiptSent {
			status = "Sent on " + receiptDispatchDate(d.Date)
		}
		fmt.Fprintf(&b, "- ₹%d on %s for %s, via %s, UTR: %s, Receipt Status: %s\n",
			d.Amount, d.Date, d.Campaign, d.PaymentMethod, d.UTR, status)
	}
	return b.String()
}
