package orderrepo

import (
	"errors"
	"fmt"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// record is an order spread over its tables.
type record struct {
	order     OrderDTO
	timeline  []TimelineEventDTO
	auditLogs []AuditLogDTO
	request   *FieldChangeRequestDTO
}

func fromDomain(o *order.Order, version ports.Version) record {
	id := o.ID().Bytes()
	content := o.Content()

	dto := OrderDTO{
		ID:              id,
		Version:         int64(version),
		Status:          int(o.Status()),
		Entity:          content.Entity,
		MaterialName:    content.MaterialName,
		PONumber:        content.PONumber,
		Quantity:        quantityToDTO(content.Quantity),
		TransitType:     content.TransitType,
		PriceToCustomer: moneyToDTO(content.PriceToCustomer),
		Customer:        contactToDTO(content.Customer),
		Supplier:        datatypes.NewJSONType(optionalContactToDTO(content.Supplier)),
		FreightHandler:  datatypes.NewJSONType(freightHandlerToDTO(content.FreightHandler)),
		IsLocked:        o.IsLocked(),
		CreatedBy:       actorToDTO(o.CreatedBy()),
		CreatedAt:       o.CreatedAt(),
	}
	dto.PriceFromSupplierAmount, dto.PriceFromSupplierCurrency = optionalMoneyColumns(content.PriceFromSupplier)

	dto.Materials = make([]MaterialDTO, 0, len(content.Materials))
	for i, item := range content.Materials {
		m := MaterialDTO{
			OrderID:           id,
			ID:                item.ID.Bytes(),
			Position:          i,
			Name:              item.Name,
			Quantity:          quantityToDTO(item.Quantity),
			CustomerUnitPrice: moneyToDTO(item.CustomerUnitPrice),
			TaxRate:           item.TaxRate,
		}
		m.SupplierUnitPriceAmount, m.SupplierUnitPriceCurrency = optionalMoneyColumns(item.SupplierUnitPrice)
		dto.Materials = append(dto.Materials, m)
	}

	rec := record{order: dto}

	for i, e := range o.Timeline() {
		rec.timeline = append(rec.timeline, TimelineEventDTO{
			ID:      e.ID.Bytes(),
			OrderID: id,
			Seq:     i,
			Event:   e.Event,
			Details: e.Details,
			Status:  int(e.Status),
			Actor:   actorToDTO(e.Actor),
			At:      e.At,
		})
	}
	for i, e := range o.AuditLogs() {
		rec.auditLogs = append(rec.auditLogs, AuditLogDTO{
			ID:       e.ID.Bytes(),
			OrderID:  id,
			Seq:      i,
			Field:    e.Field,
			OldValue: e.OldValue,
			NewValue: e.NewValue,
			Actor:    actorToDTO(e.Actor),
			At:       e.At,
			Note:     e.Note,
		})
	}

	if request := o.FieldChangeRequest(); request != nil {
		requestID := request.ID().Bytes()
		rec.order.CurrentRequestID = &requestID
		requestDTO := requestToDTO(id, request)
		rec.request = &requestDTO
	}

	return rec
}

func requestToDTO(orderID uuid.UUID, r *order.FieldChangeRequest) FieldChangeRequestDTO {
	fields := make([]FieldChangeDTO, 0, len(r.Fields()))
	for _, f := range r.Fields() {
		fields = append(fields, FieldChangeDTO{
			Field:    f.Field.String(),
			Label:    f.Label,
			OldValue: f.OldValue,
			NewValue: f.NewValue,
		})
	}

	dto := FieldChangeRequestDTO{
		ID:          r.ID().Bytes(),
		OrderID:     orderID,
		RequestedBy: actorToDTO(r.RequestedBy()),
		RequestedAt: r.RequestedAt(),
		Status:      int(r.Status()),
		ResolvedAt:  r.ResolvedAt(),
		Fields:      datatypes.NewJSONType(fields),
		Baseline:    datatypes.NewJSONType(contentToDTO(r.Baseline())),
		Proposed:    datatypes.NewJSONType(contentToDTO(r.Proposed())),
	}
	if by := r.ResolvedBy(); by != nil {
		id, name, role := by.UserID(), by.Name(), int(by.Role())
		dto.ResolvedByID = &id
		dto.ResolvedByName = &name
		dto.ResolvedByRole = &role
	}
	return dto
}

func toDomain(rec record) (*order.Order, error) {
	dto := rec.order

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	content, err := orderContent(dto)
	if err != nil {
		return nil, err
	}

	createdBy, err := actorFromDTO(dto.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("created by: %w", err)
	}

	var request *order.FieldChangeRequest
	if rec.request != nil {
		if request, err = requestFromDTO(*rec.request); err != nil {
			return nil, err
		}
	}

	trail, err := trailFromDTO(rec.timeline, rec.auditLogs)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, order.Status(dto.Status), content, createdBy, dto.CreatedAt,
		dto.IsLocked, request, trail)
}

func orderContent(dto OrderDTO) (order.Content, error) {
	var errList []error
	collect := func(err error) {
		if err != nil {
			errList = append(errList, err)
		}
	}

	quantity, err := quantityFromDTO(dto.Quantity)
	collect(err)
	priceToCustomer, err := moneyFromDTO(dto.PriceToCustomer)
	collect(err)
	priceFromSupplier, err := optionalMoneyFromColumns(dto.PriceFromSupplierAmount, dto.PriceFromSupplierCurrency)
	collect(err)

	content := order.Content{
		Entity:            dto.Entity,
		MaterialName:      dto.MaterialName,
		PONumber:          dto.PONumber,
		Quantity:          quantity,
		TransitType:       dto.TransitType,
		PriceToCustomer:   priceToCustomer,
		PriceFromSupplier: priceFromSupplier,
		Customer:          contactFromDTO(dto.Customer),
		Supplier:          optionalContactFromDTO(dto.Supplier.Data()),
		FreightHandler:    freightHandlerFromDTO(dto.FreightHandler.Data()),
		Materials:         make([]order.MaterialItem, 0, len(dto.Materials)),
	}

	for _, m := range dto.Materials {
		item, itemErr := materialFromColumns(m)
		collect(itemErr)
		content.Materials = append(content.Materials, item)
	}

	return content, errors.Join(errList...)
}

func materialFromColumns(m MaterialDTO) (order.MaterialItem, error) {
	id, err := kernel.UUIDFromBytes(m.ID[:])
	if err != nil {
		return order.MaterialItem{}, err
	}
	quantity, qErr := quantityFromDTO(m.Quantity)
	price, pErr := moneyFromDTO(m.CustomerUnitPrice)
	supplierPrice, sErr := optionalMoneyFromColumns(m.SupplierUnitPriceAmount, m.SupplierUnitPriceCurrency)
	if err = errors.Join(qErr, pErr, sErr); err != nil {
		return order.MaterialItem{}, fmt.Errorf("material %s: %w", id, err)
	}

	return order.MaterialItem{
		ID:                id,
		Name:              m.Name,
		Quantity:          quantity,
		CustomerUnitPrice: price,
		SupplierUnitPrice: supplierPrice,
		TaxRate:           m.TaxRate,
	}, nil
}

func requestFromDTO(dto FieldChangeRequestDTO) (*order.FieldChangeRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requestedBy, err := actorFromDTO(dto.RequestedBy)
	if err != nil {
		return nil, fmt.Errorf("requested by: %w", err)
	}

	var resolvedBy *kernel.Actor
	if dto.ResolvedByID != nil && dto.ResolvedByName != nil && dto.ResolvedByRole != nil {
		actor, actorErr := kernel.NewActor(*dto.ResolvedByID, *dto.ResolvedByName, kernel.Role(*dto.ResolvedByRole))
		if actorErr != nil {
			return nil, fmt.Errorf("resolved by: %w", actorErr)
		}
		resolvedBy = &actor
	}

	storedFields := dto.Fields.Data()
	fields := make([]order.FieldChange, 0, len(storedFields))
	for _, f := range storedFields {
		fields = append(fields, order.FieldChange{
			Field:    order.ParseFieldID(f.Field),
			Label:    f.Label,
			OldValue: f.OldValue,
			NewValue: f.NewValue,
		})
	}

	baseline, err := contentFromDTO(dto.Baseline.Data())
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	proposed, err := contentFromDTO(dto.Proposed.Data())
	if err != nil {
		return nil, fmt.Errorf("proposed: %w", err)
	}

	return order.RestoreFieldChangeRequest(id, requestedBy, dto.RequestedAt, fields,
		order.FieldChangeStatus(dto.Status), resolvedBy, dto.ResolvedAt, baseline, proposed)
}

func trailFromDTO(timeline []TimelineEventDTO, auditLogs []AuditLogDTO) (order.AuditTrail, error) {
	events := make([]order.TimelineEvent, 0, len(timeline))
	for _, e := range timeline {
		id, err := kernel.UUIDFromBytes(e.ID[:])
		if err != nil {
			return order.AuditTrail{}, err
		}
		actor, err := actorFromDTO(e.Actor)
		if err != nil {
			return order.AuditTrail{}, fmt.Errorf("timeline event %s: %w", id, err)
		}
		events = append(events, order.TimelineEvent{
			ID:      id,
			Event:   e.Event,
			Details: e.Details,
			Status:  order.Status(e.Status),
			Actor:   actor,
			At:      e.At,
		})
	}

	entries := make([]order.AuditEntry, 0, len(auditLogs))
	for _, e := range auditLogs {
		id, err := kernel.UUIDFromBytes(e.ID[:])
		if err != nil {
			return order.AuditTrail{}, err
		}
		actor, err := actorFromDTO(e.Actor)
		if err != nil {
			return order.AuditTrail{}, fmt.Errorf("audit entry %s: %w", id, err)
		}
		entries = append(entries, order.AuditEntry{
			ID:       id,
			Field:    e.Field,
			OldValue: e.OldValue,
			NewValue: e.NewValue,
			Actor:    actor,
			At:       e.At,
			Note:     e.Note,
		})
	}

	return order.NewAuditTrail(events, entries), nil
}

func contentToDTO(c order.Content) ContentDTO {
	dto := ContentDTO{
		Entity:          c.Entity,
		MaterialName:    c.MaterialName,
		PONumber:        c.PONumber,
		Quantity:        quantityToDTO(c.Quantity),
		TransitType:     c.TransitType,
		PriceToCustomer: moneyToDTO(c.PriceToCustomer),
		Customer:        contactToDTO(c.Customer),
		Supplier:        optionalContactToDTO(c.Supplier),
		FreightHandler:  freightHandlerToDTO(c.FreightHandler),
		Materials:       make([]MaterialJSONDTO, 0, len(c.Materials)),
	}
	if c.PriceFromSupplier != nil {
		price := moneyToDTO(*c.PriceFromSupplier)
		dto.PriceFromSupplier = &price
	}
	for _, item := range c.Materials {
		m := MaterialJSONDTO{
			ID:                item.ID.Bytes(),
			Name:              item.Name,
			Quantity:          quantityToDTO(item.Quantity),
			CustomerUnitPrice: moneyToDTO(item.CustomerUnitPrice),
			TaxRate:           item.TaxRate,
		}
		if item.SupplierUnitPrice != nil {
			price := moneyToDTO(*item.SupplierUnitPrice)
			m.SupplierUnitPrice = &price
		}
		dto.Materials = append(dto.Materials, m)
	}
	return dto
}

func contentFromDTO(dto ContentDTO) (order.Content, error) {
	var errList []error

	quantity, err := quantityFromDTO(dto.Quantity)
	errList = append(errList, err)
	priceToCustomer, err := moneyFromDTO(dto.PriceToCustomer)
	errList = append(errList, err)

	content := order.Content{
		Entity:          dto.Entity,
		MaterialName:    dto.MaterialName,
		PONumber:        dto.PONumber,
		Quantity:        quantity,
		TransitType:     dto.TransitType,
		PriceToCustomer: priceToCustomer,
		Customer:        contactFromDTO(dto.Customer),
		Supplier:        optionalContactFromDTO(dto.Supplier),
		FreightHandler:  freightHandlerFromDTO(dto.FreightHandler),
		Materials:       make([]order.MaterialItem, 0, len(dto.Materials)),
	}
	if dto.PriceFromSupplier != nil {
		price, priceErr := moneyFromDTO(*dto.PriceFromSupplier)
		errList = append(errList, priceErr)
		content.PriceFromSupplier = &price
	}

	for _, m := range dto.Materials {
		id, idErr := kernel.UUIDFromBytes(m.ID[:])
		itemQuantity, qErr := quantityFromDTO(m.Quantity)
		price, pErr := moneyFromDTO(m.CustomerUnitPrice)
		errList = append(errList, idErr, qErr, pErr)

		item := order.MaterialItem{
			ID:                id,
			Name:              m.Name,
			Quantity:          itemQuantity,
			CustomerUnitPrice: price,
			TaxRate:           m.TaxRate,
		}
		if m.SupplierUnitPrice != nil {
			supplierPrice, sErr := moneyFromDTO(*m.SupplierUnitPrice)
			errList = append(errList, sErr)
			item.SupplierUnitPrice = &supplierPrice
		}
		content.Materials = append(content.Materials, item)
	}

	return content, errors.Join(errList...)
}

func actorToDTO(a kernel.Actor) ActorDTO {
	return ActorDTO{ID: a.UserID(), Name: a.Name(), Role: int(a.Role())}
}

func actorFromDTO(dto ActorDTO) (kernel.Actor, error) {
	return kernel.NewActor(dto.ID, dto.Name, kernel.Role(dto.Role))
}

func moneyToDTO(m kernel.Money) MoneyDTO {
	return MoneyDTO{Amount: m.Amount(), Currency: m.Currency()}
}

func moneyFromDTO(dto MoneyDTO) (kernel.Money, error) {
	return kernel.NewMoney(dto.Amount, dto.Currency)
}

func quantityToDTO(q kernel.Quantity) QuantityDTO {
	return QuantityDTO{Value: q.Value(), Unit: q.Unit()}
}

func quantityFromDTO(dto QuantityDTO) (kernel.Quantity, error) {
	return kernel.NewQuantity(dto.Value, dto.Unit)
}

func optionalMoneyColumns(m *kernel.Money) (decimal.NullDecimal, *string) {
	if m == nil {
		return decimal.NullDecimal{}, nil
	}
	currency := m.Currency()
	return decimal.NewNullDecimal(m.Amount()), &currency
}

func optionalMoneyFromColumns(amount decimal.NullDecimal, currency *string) (*kernel.Money, error) {
	if !amount.Valid || currency == nil {
		return nil, nil
	}
	m, err := kernel.NewMoney(amount.Decimal, *currency)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func contactToDTO(c order.Contact) ContactDTO {
	return ContactDTO(c)
}

func contactFromDTO(dto ContactDTO) order.Contact {
	return order.Contact(dto)
}

func optionalContactToDTO(c *order.Contact) *ContactDTO {
	if c == nil {
		return nil
	}
	dto := contactToDTO(*c)
	return &dto
}

func optionalContactFromDTO(dto *ContactDTO) *order.Contact {
	if dto == nil {
		return nil
	}
	c := contactFromDTO(*dto)
	return &c
}

func freightHandlerToDTO(h *order.FreightHandler) *FreightHandlerDTO {
	if h == nil {
		return nil
	}
	dto := FreightHandlerDTO(*h)
	return &dto
}

func freightHandlerFromDTO(dto *FreightHandlerDTO) *order.FreightHandler {
	if dto == nil {
		return nil
	}
	h := order.FreightHandler(*dto)
	return &h
}
