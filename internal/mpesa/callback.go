package mpesa

import "fmt"

// CallbackEnvelope mirrors the nested provider notification body.
type CallbackEnvelope struct {
	Body struct {
		STKCallback STKCallback `json:"stkCallback"`
	} `json:"Body"`
}

// STKCallback carries the payment outcome. ResultCode zero means success.
type STKCallback struct {
	MerchantRequestID string   `json:"MerchantRequestID"`
	CheckoutRequestID string   `json:"CheckoutRequestID"`
	ResultCode        int      `json:"ResultCode"`
	ResultDesc        string   `json:"ResultDesc"`
	CallbackMetadata  Metadata `json:"CallbackMetadata"`
}

// Metadata is the heterogeneous item list attached to successful callbacks.
type Metadata struct {
	Item []MetadataItem `json:"Item"`
}

// MetadataItem is a single name/value pair.
type MetadataItem struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

// PaymentDetails is the typed extraction of a successful callback.
type PaymentDetails struct {
	Amount          float64
	ReceiptNumber   string
	TransactionDate int64
	PhoneNumber     int64
}

// Details builds a name-keyed map once and extracts the required fields.
// Every required key must be present or extraction fails.
func (m Metadata) Details() (PaymentDetails, error) {
	byName := make(map[string]any, len(m.Item))
	for _, item := range m.Item {
		byName[item.Name] = item.Value
	}

	var d PaymentDetails
	var err error
	if d.Amount, err = number(byName, "Amount"); err != nil {
		return PaymentDetails{}, err
	}
	receipt, ok := byName["MpesaReceiptNumber"].(string)
	if !ok {
		return PaymentDetails{}, fmt.Errorf("callback metadata missing MpesaReceiptNumber")
	}
	d.ReceiptNumber = receipt
	date, err := number(byName, "TransactionDate")
	if err != nil {
		return PaymentDetails{}, err
	}
	d.TransactionDate = int64(date)
	phone, err := number(byName, "PhoneNumber")
	if err != nil {
		return PaymentDetails{}, err
	}
	d.PhoneNumber = int64(phone)
	return d, nil
}

func number(byName map[string]any, key string) (float64, error) {
	v, ok := byName[key].(float64)
	if !ok {
		return 0, fmt.Errorf("callback metadata missing %s", key)
	}
	return v, nil
}
