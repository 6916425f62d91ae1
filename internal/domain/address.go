package domain

type Address struct {
	ID         int
	Country    string
	State      string
	City       string
	PostalCode string
	Line1      string
	Line2      string
}
