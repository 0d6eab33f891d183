package client

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

// Client is a customer company. Company names are stored NFC-normalized so
// lookups by name compare canonical forms.
type Client struct {
	id          string
	contactName string
	companyName string
	email       string
	phone       string
	address     string
	createdAt   time.Time
	updatedAt   time.Time
}

// NormalizeCompanyName trims surrounding whitespace and applies Unicode NFC.
// Matching stays case-sensitive.
func NormalizeCompanyName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func validateContact(companyName, email string) error {
	if companyName == "" {
		return fmt.Errorf("company name is required")
	}
	if len(companyName) > 200 {
		return fmt.Errorf("company name exceeds maximum length of 200 characters")
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("invalid email address: %s", email)
		}
	}
	return nil
}

func NewClient(contactName, companyName, email, phone, address string) (*Client, error) {
	companyName = NormalizeCompanyName(companyName)
	email = strings.TrimSpace(email)
	if err := validateContact(companyName, email); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Client{
		contactName: strings.TrimSpace(contactName),
		companyName: companyName,
		email:       email,
		phone:       strings.TrimSpace(phone),
		address:     strings.TrimSpace(address),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructClient(
	id string,
	contactName, companyName, email, phone, address string,
	createdAt, updatedAt time.Time,
) (*Client, error) {
	if id == "" {
		return nil, fmt.Errorf("client ID cannot be empty")
	}
	return &Client{
		id:          id,
		contactName: contactName,
		companyName: companyName,
		email:       email,
		phone:       phone,
		address:     address,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) ContactName() string {
	return c.contactName
}

func (c *Client) CompanyName() string {
	return c.companyName
}

func (c *Client) Email() string {
	return c.email
}

func (c *Client) Phone() string {
	return c.phone
}

func (c *Client) Address() string {
	return c.address
}

func (c *Client) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Client) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Client) SetID(id string) error {
	if c.id != "" {
		return fmt.Errorf("client ID is already set")
	}
	if id == "" {
		return fmt.Errorf("client ID cannot be empty")
	}
	c.id = id
	return nil
}

// Update applies the non-nil fields.
func (c *Client) Update(contactName, companyName, email, phone, address *string) error {
	next := *c
	if contactName != nil {
		next.contactName = strings.TrimSpace(*contactName)
	}
	if companyName != nil {
		next.companyName = NormalizeCompanyName(*companyName)
	}
	if email != nil {
		next.email = strings.TrimSpace(*email)
	}
	if phone != nil {
		next.phone = strings.TrimSpace(*phone)
	}
	if address != nil {
		next.address = strings.TrimSpace(*address)
	}
	if err := validateContact(next.companyName, next.email); err != nil {
		return err
	}
	next.updatedAt = biztime.NowUTC()
	*c = next
	return nil
}
