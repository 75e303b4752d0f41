package order

import (
	"fmt"
	"strings"

	"procurement/internal/pkg/errs"
)

// Status is the lifecycle stage of a procurement order.
//
// The numeric order of the constants IS the stage ordering. Comparisons such as
// IsAtOrAfter rely on it, so new stages must be inserted at their position in the
// business flow, not appended.
//
//	PO_Received_from_Client -> Drafting_PO_for_Supplier -> Sent_PO_for_Approval
//	    -> PO_Approved | PO_Rejected (-> Drafting_PO_for_Supplier)
//	PO_Approved -> PO_Sent_to_Supplier -> Proforma_Invoice_Received -> Awaiting_COA
//	    -> COA_Received <-> COA_Revision, COA_Received -> COA_Accepted
//	COA_Accepted -> Awaiting_Approval -> Approved -> Advance_Payment_Completed
//	    -> Material_to_be_Dispatched -> Material_Dispatched -> In_Transit -> Completed
type Status int

const (
	Unknown Status = iota
	POReceivedFromClient
	DraftingPOForSupplier
	SentPOForApproval
	PORejected
	POApproved
	POSentToSupplier
	ProformaInvoiceReceived
	AwaitingCOA
	COAReceived
	COARevision
	COAAccepted
	AwaitingApproval
	Approved
	AdvancePaymentCompleted
	MaterialToBeDispatched
	MaterialDispatched
	InTransit
	Completed
)

// FieldChangeApprovalThreshold is the first stage at which protected field
// edits stop being applied directly and require a privileged approver.
const FieldChangeApprovalThreshold = POApproved

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                 "Unknown",
		POReceivedFromClient:    "PO_Received_from_Client",
		DraftingPOForSupplier:   "Drafting_PO_for_Supplier",
		SentPOForApproval:       "Sent_PO_for_Approval",
		PORejected:              "PO_Rejected",
		POApproved:              "PO_Approved",
		POSentToSupplier:        "PO_Sent_to_Supplier",
		ProformaInvoiceReceived: "Proforma_Invoice_Received",
		AwaitingCOA:             "Awaiting_COA",
		COAReceived:             "COA_Received",
		COARevision:             "COA_Revision",
		COAAccepted:             "COA_Accepted",
		AwaitingApproval:        "Awaiting_Approval",
		Approved:                "Approved",
		AdvancePaymentCompleted: "Advance_Payment_Completed",
		MaterialToBeDispatched:  "Material_to_be_Dispatched",
		MaterialDispatched:      "Material_Dispatched",
		InTransit:               "In_Transit",
		Completed:               "Completed",
	}
}

// Statuses lists every valid stage in stage order.
func Statuses() []Status {
	statuses := make([]Status, 0, int(Completed))
	for s := POReceivedFromClient; s <= Completed; s++ {
		statuses = append(statuses, s)
	}
	return statuses
}

// ParseStatus maps the wire name (e.g. "Sent_PO_for_Approval") to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Label is the human readable form used in timeline details.
func (s Status) Label() string {
	return strings.ReplaceAll(s.String(), "_", " ")
}

// IsAtOrAfter compares positions in the stage ordering.
func (s Status) IsAtOrAfter(other Status) bool {
	return s >= other
}

// RequiresFieldChangeApproval reports whether protected edits made in this
// stage must go through a FieldChangeRequest.
func (s Status) RequiresFieldChangeApproval() bool {
	return s.IsAtOrAfter(FieldChangeApprovalThreshold)
}
