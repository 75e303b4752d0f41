package http

import (
	"errors"
	"fmt"

	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

func actorFromHeaders(h ActorHeaders) (kernel.Actor, error) {
	role, err := kernel.ParseRole(string(h.XUserRole))
	if err != nil {
		return kernel.Actor{}, err
	}
	return kernel.NewActor(h.XUserId, h.XUserName, role)
}

// toDomain converts a request body. Line items without an id are new and get
// one here; items sent with an id are matched against the stored order.
func (c OrderContent) toDomain() (order.Content, error) {
	var errList []error
	collect := func(path string, err error) {
		if err != nil {
			errList = append(errList, fmt.Errorf("%s: %w", path, err))
		}
	}

	quantity, err := c.Quantity.toDomain()
	collect("quantity", err)
	priceToCustomer, err := c.PriceToCustomer.toDomain()
	collect("priceToCustomer", err)
	priceFromSupplier, err := optionalMoneyToDomain(c.PriceFromSupplier)
	collect("priceFromSupplier", err)

	content := order.Content{
		Entity:            c.Entity,
		MaterialName:      c.MaterialName,
		PONumber:          c.PoNumber,
		Quantity:          quantity,
		TransitType:       c.TransitType,
		PriceToCustomer:   priceToCustomer,
		PriceFromSupplier: priceFromSupplier,
		Customer:          order.Contact(c.Customer),
		Materials:         make([]order.MaterialItem, 0, len(c.Materials)),
	}
	if c.Supplier != nil {
		supplier := order.Contact(*c.Supplier)
		content.Supplier = &supplier
	}
	if c.FreightHandler != nil {
		handler := order.FreightHandler(*c.FreightHandler)
		content.FreightHandler = &handler
	}

	for i, m := range c.Materials {
		item, itemErr := m.toDomain()
		collect(fmt.Sprintf("materials[%d]", i), itemErr)
		content.Materials = append(content.Materials, item)
	}

	if err = errors.Join(errList...); err != nil {
		return order.Content{}, err
	}
	return content, nil
}

func (m Material) toDomain() (order.MaterialItem, error) {
	id := kernel.NewUUID()
	if m.Id != nil {
		parsed, err := kernel.UUIDFromBytes(m.Id[:])
		if err != nil {
			return order.MaterialItem{}, err
		}
		id = parsed
	}

	quantity, qErr := m.Quantity.toDomain()
	customerPrice, cErr := m.CustomerUnitPrice.toDomain()
	supplierPrice, sErr := optionalMoneyToDomain(m.SupplierUnitPrice)
	if err := errors.Join(qErr, cErr, sErr); err != nil {
		return order.MaterialItem{}, err
	}

	taxRate := decimal.Zero
	if m.TaxRate != nil {
		taxRate = *m.TaxRate
	}

	return order.MaterialItem{
		ID:                id,
		Name:              m.Name,
		Quantity:          quantity,
		CustomerUnitPrice: customerPrice,
		SupplierUnitPrice: supplierPrice,
		TaxRate:           taxRate,
	}, nil
}

func (q Quantity) toDomain() (kernel.Quantity, error) {
	return kernel.NewQuantity(q.Value, q.Unit)
}

func (m Money) toDomain() (kernel.Money, error) {
	return kernel.NewMoney(m.Amount, m.Currency)
}

func optionalMoneyToDomain(m *Money) (*kernel.Money, error) {
	if m == nil {
		return nil, nil
	}
	money, err := m.toDomain()
	if err != nil {
		return nil, err
	}
	return &money, nil
}

func toOrderResponse(o *order.Order, version *ports.Version) Order {
	resp := Order{
		Id:          o.ID().Bytes(),
		Status:      o.Status().String(),
		StatusLabel: o.Status().Label(),
		IsLocked:    o.IsLocked(),
		Content:     toContentResponse(o.Content()),
		CreatedBy:   toActorResponse(o.CreatedBy()),
		CreatedAt:   o.CreatedAt(),
		Timeline:    make([]TimelineEvent, 0, len(o.Timeline())),
		AuditLogs:   make([]AuditEntry, 0, len(o.AuditLogs())),
	}
	if version != nil {
		v := int64(*version)
		resp.Version = &v
	}

	if request := o.FieldChangeRequest(); request != nil {
		resp.FieldChangeRequest = toFieldChangeRequestResponse(request)
	}

	for _, event := range o.Timeline() {
		resp.Timeline = append(resp.Timeline, TimelineEvent{
			Event:   event.Event,
			Details: event.Details,
			Status:  event.Status.String(),
			Actor:   toActorResponse(event.Actor),
			At:      event.At,
		})
	}
	for _, entry := range o.AuditLogs() {
		resp.AuditLogs = append(resp.AuditLogs, AuditEntry{
			Field:    entry.Field,
			OldValue: entry.OldValue,
			NewValue: entry.NewValue,
			Actor:    toActorResponse(entry.Actor),
			At:       entry.At,
			Note:     entry.Note,
		})
	}

	return resp
}

func toFieldChangeRequestResponse(r *order.FieldChangeRequest) *FieldChangeRequest {
	resp := &FieldChangeRequest{
		Id:          r.ID().Bytes(),
		Status:      r.Status().String(),
		RequestedBy: toActorResponse(r.RequestedBy()),
		RequestedAt: r.RequestedAt(),
		ResolvedAt:  r.ResolvedAt(),
		Fields:      toFieldChangesResponse(r.Fields()),
		Summary:     r.Summary(),
	}
	if by := r.ResolvedBy(); by != nil {
		actor := toActorResponse(*by)
		resp.ResolvedBy = &actor
	}
	return resp
}

func toFieldChangesResponse(changes []order.FieldChange) []FieldChange {
	resp := make([]FieldChange, 0, len(changes))
	for _, c := range changes {
		resp = append(resp, FieldChange{
			Field:    c.Field.String(),
			Label:    c.Label,
			OldValue: c.OldValue,
			NewValue: c.NewValue,
		})
	}
	return resp
}

func toContentResponse(c order.Content) OrderContent {
	resp := OrderContent{
		Entity:            c.Entity,
		MaterialName:      c.MaterialName,
		PoNumber:          c.PONumber,
		Quantity:          toQuantityResponse(c.Quantity),
		TransitType:       c.TransitType,
		PriceToCustomer:   toMoneyResponse(c.PriceToCustomer),
		PriceFromSupplier: toOptionalMoneyResponse(c.PriceFromSupplier),
		Customer:          Contact(c.Customer),
		Materials:         make([]Material, 0, len(c.Materials)),
	}
	if c.Supplier != nil {
		supplier := Contact(*c.Supplier)
		resp.Supplier = &supplier
	}
	if c.FreightHandler != nil {
		handler := FreightHandler(*c.FreightHandler)
		resp.FreightHandler = &handler
	}

	for _, item := range c.Materials {
		id := openapi_types.UUID(item.ID.Bytes())
		taxRate := item.TaxRate
		resp.Materials = append(resp.Materials, Material{
			Id:                &id,
			Name:              item.Name,
			Quantity:          toQuantityResponse(item.Quantity),
			CustomerUnitPrice: toMoneyResponse(item.CustomerUnitPrice),
			SupplierUnitPrice: toOptionalMoneyResponse(item.SupplierUnitPrice),
			TaxRate:           &taxRate,
		})
	}
	return resp
}

func toQuantityResponse(q kernel.Quantity) Quantity {
	return Quantity{Value: q.Value(), Unit: q.Unit()}
}

func toMoneyResponse(m kernel.Money) Money {
	return Money{Amount: m.Amount(), Currency: m.Currency()}
}

func toOptionalMoneyResponse(m *kernel.Money) *Money {
	if m == nil {
		return nil
	}
	resp := toMoneyResponse(*m)
	return &resp
}

func toActorResponse(a kernel.Actor) Actor {
	return Actor{Id: a.UserID(), Name: a.Name(), Role: Role(a.Role().String())}
}

func toTransitionsResponse(rules []order.TransitionRule) []Transition {
	resp := make([]Transition, 0, len(rules))
	for _, rule := range rules {
		resp = append(resp, Transition{
			To:               rule.To.String(),
			Label:            rule.To.Label(),
			Description:      rule.Description,
			RequiresEntity:   rule.RequiresEntity,
			RequiresApprover: rule.RequiresApprover,
		})
	}
	return resp
}

func toPendingResponse(pending []queries.PendingFieldChange) []PendingFieldChange {
	resp := make([]PendingFieldChange, 0, len(pending))
	for _, p := range pending {
		resp = append(resp, PendingFieldChange{
			RequestId:    p.RequestID.Bytes(),
			OrderId:      p.OrderID.Bytes(),
			PoNumber:     p.PONumber,
			CustomerName: p.CustomerName,
			RequestedBy:  p.RequestedByName,
			RequestedAt:  p.RequestedAt,
			FieldCount:   p.FieldCount,
		})
	}
	return resp
}

func toOrderSummariesResponse(summaries []queries.OrderSummary) []OrderSummary {
	resp := make([]OrderSummary, 0, len(summaries))
	for _, o := range summaries {
		resp = append(resp, OrderSummary{
			Id:           o.ID.Bytes(),
			PoNumber:     o.PONumber,
			Entity:       o.Entity,
			CustomerName: o.CustomerName,
			Status:       o.Status.String(),
			StatusLabel:  o.Status.Label(),
			IsLocked:     o.IsLocked,
			CreatedBy:    o.CreatedByName,
			CreatedAt:    o.CreatedAt,
		})
	}
	return resp
}
