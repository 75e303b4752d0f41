package order

import "procurement/internal/core/domain/model/kernel"

// TransitionRule is one row of the status policy table: an actor holding
// RequiredRole may move an order from From to To.
type TransitionRule struct {
	From         Status
	To           Status
	RequiredRole kernel.Role
	Description  string

	// RequiresEntity means the order must carry an operating entity designation.
	RequiresEntity bool
	// RequiresApprover means the caller must name the person who receives the
	// approval task for the status itself.
	RequiresApprover bool
}

// TransitionRules returns a fresh copy of the policy table. The table is the
// policy: nothing outside it special-cases roles or stages.
func TransitionRules() []TransitionRule {
	return []TransitionRule{
		{From: POReceivedFromClient, To: DraftingPOForSupplier, RequiredRole: kernel.RoleEmployee,
			Description: "Start drafting the PO for the supplier", RequiresEntity: true},
		{From: DraftingPOForSupplier, To: SentPOForApproval, RequiredRole: kernel.RoleEmployee,
			Description: "Send the supplier PO for approval", RequiresApprover: true},
		{From: SentPOForApproval, To: POApproved, RequiredRole: kernel.RoleManagement,
			Description: "Approve the supplier PO"},
		{From: SentPOForApproval, To: POApproved, RequiredRole: kernel.RoleAdmin,
			Description: "Approve the supplier PO"},
		{From: SentPOForApproval, To: PORejected, RequiredRole: kernel.RoleManagement,
			Description: "Reject the supplier PO"},
		{From: SentPOForApproval, To: PORejected, RequiredRole: kernel.RoleAdmin,
			Description: "Reject the supplier PO"},
		{From: PORejected, To: DraftingPOForSupplier, RequiredRole: kernel.RoleEmployee,
			Description: "Revise the rejected PO", RequiresEntity: true},
		{From: POApproved, To: POSentToSupplier, RequiredRole: kernel.RoleEmployee,
			Description: "Send the approved PO to the supplier"},
		{From: POSentToSupplier, To: ProformaInvoiceReceived, RequiredRole: kernel.RoleEmployee,
			Description: "Record the proforma invoice"},
		{From: ProformaInvoiceReceived, To: AwaitingCOA, RequiredRole: kernel.RoleEmployee,
			Description: "Request the certificate of analysis"},
		{From: AwaitingCOA, To: COAReceived, RequiredRole: kernel.RoleEmployee,
			Description: "Record the certificate of analysis"},
		{From: COAReceived, To: COARevision, RequiredRole: kernel.RoleEmployee,
			Description: "Ask the supplier to revise the COA"},
		{From: COAReceived, To: COAAccepted, RequiredRole: kernel.RoleEmployee,
			Description: "Accept the COA"},
		{From: COARevision, To: COAReceived, RequiredRole: kernel.RoleEmployee,
			Description: "Record the revised COA"},
		{From: COAAccepted, To: AwaitingApproval, RequiredRole: kernel.RoleManager,
			Description: "Request approval to pay", RequiresApprover: true},
		{From: AwaitingApproval, To: Approved, RequiredRole: kernel.RoleManager,
			Description: "Approve payment"},
		{From: Approved, To: AdvancePaymentCompleted, RequiredRole: kernel.RoleEmployee,
			Description: "Record the advance payment"},
		{From: AdvancePaymentCompleted, To: MaterialToBeDispatched, RequiredRole: kernel.RoleEmployee,
			Description: "Schedule dispatch"},
		{From: MaterialToBeDispatched, To: MaterialDispatched, RequiredRole: kernel.RoleEmployee,
			Description: "Record dispatch"},
		{From: MaterialDispatched, To: InTransit, RequiredRole: kernel.RoleEmployee,
			Description: "Mark the shipment in transit"},
		{From: InTransit, To: Completed, RequiredRole: kernel.RoleEmployee,
			Description: "Complete the order"},
	}
}
