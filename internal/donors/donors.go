// Package donors is the stand-in donor knowledge base: dummy donation
// records, contact tables, and heuristic identity resolution. A production
// deployment would back this with the foundation's CRM.
package donors

import "time"

// Donation is a single historical donation record.
type Donation struct {
	Amount        int
	Date          string // YYYY-MM-DD
	UTR           string
	ReceiptSent   bool
	DonorName     string
	PaymentMethod string
	Campaign      string
}

// Donations holds the known donation history keyed by donor id.
var Donations = map[int][]Donation{
	1: {
		{Amount: 3000, Date: "2025-03-02", UTR: "UTR789456", ReceiptSent: false, DonorName: "Rajesh Sharma", PaymentMethod: "UPI", Campaign: "Education Fund"},
		{Amount: 5000, Date: "2024-12-15", UTR: "UTR123789", ReceiptSent: true, DonorName: "Rajesh Sharma", PaymentMethod: "Bank Transfer", Campaign: "Winter Relief"},
	},
	2: {
		{Amount: 10000, Date: "2025-04-01", UTR: "UTR456123", ReceiptSent: true, DonorName: "Priya Patel", PaymentMethod: "Credit Card", Campaign: "Healthcare Initiative"},
		{Amount: 2500, Date: "2025-01-10", UTR: "UTR987234", ReceiptSent: true, DonorName: "Priya Patel", PaymentMethod: "UPI", Campaign: "Education Fund"},
	},
	3: {
		{Amount: 50000, Date: "2025-03-15", UTR: "UTR567890", ReceiptSent: false, DonorName: "Amit Verma", PaymentMethod: "Bank Transfer", Campaign: "Rural Development"},
		{Amount: 15000, Date: "2024-11-05", UTR: "UTR345678", ReceiptSent: true, DonorName: "Amit Verma", PaymentMethod: "UPI", Campaign: "Clean Water Project"},
	},
	4: {
		{Amount: 1000, Date: "2025-03-28", UTR: "UTR654321", ReceiptSent: true, DonorName: "Sneha Gupta", PaymentMethod: "UPI", Campaign: "Education Fund"},
	},
	5: {}, // new donor with no history
	6: {
		{Amount: 2000, Date: "2025-02-18", UTR: "UTR123456", ReceiptSent: true, DonorName: "Arvin Kumar", PaymentMethod: "UPI", Campaign: "Education Fund"},
	},
}

// Phones holds donor phone numbers in display format.
var Phones = map[int]string{
	1: "+91 98765 43210",
	2: "+91 87654 32109",
	3: "+91 76543 21098",
	4: "+91 65432 10987",
	5: "+91 54321 09876",
	6: "+91 97800 86800",
}

// Emails holds donor email addresses.
var Emails = map[int]string{
	1: "rajesh.sharma@example.com",
	2: "priya.patel@example.com",
	3: "amit.verma@example.com",
	4: "sneha.gupta@example.com",
	5: "new.donor@example.com",
	6: "arvin.kumar@example.com",
}

// OfficeHours is the foundation's public office schedule.
const OfficeHours = "Monday to Saturday, 10:00 AM to 6:00 PM"

// CurrentCampaigns lists the campaigns currently accepting donations.
var CurrentCampaigns = []string{"Education Fund", "Healthcare Initiative", "Clean Water Project", "Summer Relief 2025"}

const dateLayout = "2006-01-02"

// receiptDispatchDate returns the date a receipt went out, two days after the
// donation itself.
func receiptDispatchDate(donationDate string) string {
	d, err := time.Parse(dateLayout, donationDate)
	if err != nil {
		return donationDate
	}
	return d.AddDate(0, 0, 2).Format(dateLayout)
}
