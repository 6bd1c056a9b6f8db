package order

import (
	"encoding/json"
	"fmt"

	"resto/internal/pkg/errs"
)

// DeliveryMethod is how the order reaches the customer: courier delivery
// (DIANTAR) or customer pickup (AMBIL_SENDIRI).
type DeliveryMethod int

const (
	// DeliveryMethodUnknown represents an invalid or undefined delivery method.
	DeliveryMethodUnknown DeliveryMethod = iota

	// Diantar means the order is delivered to the customer by a courier.
	Diantar

	// AmbilSendiri means the customer picks the order up themselves.
	AmbilSendiri
)

func getDeliveryMethodStrings() map[DeliveryMethod]string {
	return map[DeliveryMethod]string{
		Diantar:      "DIANTAR",
		AmbilSendiri: "AMBIL_SENDIRI",
	}
}

// DeliveryMethodFromString parses a wire name into a DeliveryMethod.
func DeliveryMethodFromString(s string) (DeliveryMethod, error) {
	for method, name := range getDeliveryMethodStrings() {
		if name == s {
			return method, nil
		}
	}
	return DeliveryMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"deliveryMethod",
		fmt.Errorf("%q is not a valid delivery method", s),
	)
}

// Validate checks if the DeliveryMethod value is valid.
func (m DeliveryMethod) Validate() error {
	if _, ok := getDeliveryMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryMethod",
			fmt.Errorf("%d is not a valid delivery method", m),
		)
	}
	return nil
}

// String returns the wire name of the delivery method.
func (m DeliveryMethod) String() string {
	if str, ok := getDeliveryMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

// PaymentMethod is how the customer pays for the order. CASH is settled on
// handover; every other method is electronic and requires an explicit
// verification step before the kitchen starts processing.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota

	// Cash is settled on handover and needs no verification.
	Cash

	// Electronic payment methods; all of them require verification.
	QRIS
	GoPay
	ShopeePay
	OVO
	Dana
	Transfer
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		Cash:      "CASH",
		QRIS:      "QRIS",
		GoPay:     "GOPAY",
		ShopeePay: "SHOPEEPAY",
		OVO:       "OVO",
		Dana:      "DANA",
		Transfer:  "TRANSFER",
	}
}

// AllPaymentMethods returns every valid payment method.
func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{Cash, QRIS, GoPay, ShopeePay, OVO, Dana, Transfer}
}

// PaymentMethodFromString parses a wire name into a PaymentMethod.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, name := range getPaymentMethodStrings() {
		if name == s {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentMethod",
		fmt.Errorf("%q is not a valid payment method", s),
	)
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m),
		)
	}
	return nil
}

// String returns the wire name of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

// RequiresVerification reports whether the payment must be verified before
// the order can be processed. True for every electronic method, false for CASH.
func (m PaymentMethod) RequiresVerification() bool {
	return m != Cash && m.Validate() == nil
}

// MarshalJSON writes the payment method as its wire name.
func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m.String())
}

// UnmarshalJSON parses a wire name back into a PaymentMethod.
func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	method, err := PaymentMethodFromString(name)
	if err != nil {
		return err
	}
	*m = method
	return nil
}
