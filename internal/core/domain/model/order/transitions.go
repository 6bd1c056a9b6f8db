package order

// This file is the single source of truth for legal status transitions.
// ValidNextStatuses is authoritative; IsValidTransition is a membership
// check over it and RecommendedNextStatus is UI guidance only, never an
// enforcement path.

// ValidNextStatuses returns the set of statuses the order may move to from
// current, given its delivery and payment methods. It is a pure function
// with no side effects and no I/O.
//
// Two statuses are method-sensitive:
//   - ORDERED branches on the payment method: electronic payments must pass
//     through PAYMENT_PENDING for verification, cash goes straight to
//     PROCESSED.
//   - PROCESSED branches on the delivery method: DIANTAR orders go out for
//     delivery, AMBIL_SENDIRI orders become READY for pickup.
//
// COMPLETED and CANCELLED are terminal and return an empty set.
func ValidNextStatuses(current Status, delivery DeliveryMethod, payment PaymentMethod) []Status {
	switch current {
	case StatusOrdered:
		if payment.RequiresVerification() {
			return []Status{StatusPaymentPending, StatusCancelled}
		}
		return []Status{StatusProcessed, StatusCancelled}

	case StatusPaymentPending:
		return []Status{StatusProcessed, StatusCancelled}

	case StatusProcessed:
		if delivery == Diantar {
			return []Status{StatusOnDelivery, StatusCancelled}
		}
		return []Status{StatusReady, StatusCancelled}

	case StatusOnDelivery:
		return []Status{StatusCompleted, StatusCancelled}

	case StatusReady:
		return []Status{StatusCompleted, StatusCancelled}

	case StatusCompleted, StatusCancelled:
		return []Status{}

	case StatusUnknown:
		return []Status{}
	}

	return []Status{}
}

// IsValidTransition reports whether to is a member of the valid-next set
// computed for from under the given methods.
func IsValidTransition(from, to Status, delivery DeliveryMethod, payment PaymentMethod) bool {
	for _, next := range ValidNextStatuses(from, delivery, payment) {
		if next == to {
			return true
		}
	}
	return false
}

// RecommendedNextStatus picks the canonical forward step from current for
// UI defaults, skipping CANCELLED. PAYMENT_PENDING only recommends
// PROCESSED once the payment has been verified. The second return value is
// false when there is nothing to recommend.
func RecommendedNextStatus(
	current Status,
	delivery DeliveryMethod,
	payment PaymentMethod,
	paymentVerified bool,
) (Status, bool) {
	if current == StatusPaymentPending && !paymentVerified {
		return StatusUnknown, false
	}

	for _, next := range ValidNextStatuses(current, delivery, payment) {
		if next != StatusCancelled {
			return next, true
		}
	}

	return StatusUnknown, false
}
