package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the fulfillment domain. It owns the ordered line
// items of one customer's purchase and keeps the aggregate status consistent
// with the per-item statuses.
//
// Order follows these invariants:
//   - Status Cancelled if and only if IsCancelled; a cancelled order accepts no change
//   - Status Delivered implies every line item is Delivered
//   - Status PartiallyDelivered implies some item has a delivery outcome and some item is not Delivered
//   - DispatchedAt and DeliveredAt are set once and never changed
//   - Every successful mutation sets UpdatedAt and increments Version by one
type Order struct {
	id         kernel.UUID
	customerID string
	lineItems  []LineItem
	notes      string

	status               Status
	isCancelled          bool
	isPartiallyDelivered bool
	cancellationNote     string

	createdAt    time.Time
	updatedAt    time.Time
	dispatchedAt *time.Time
	deliveredAt  *time.Time

	// version is the optimistic concurrency token compared by the order store.
	version int

	guard guard.ConstructorGuard
}

// NewOrder creates an order in Processing status with every line item Pending.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - customerID: The ordering customer (must not be blank)
//   - lineItems: At least one line item built with NewLineItem
//   - notes: Free-text order notes
//   - now: Creation time, used for CreatedAt and UpdatedAt
//
// Example:
//
//	item, _ := order.NewLineItem("product-1", "vendor-1", 2)
//	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", []order.LineItem{item}, "", clock.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, customerID string, lineItems []LineItem, notes string, now time.Time) (*Order, error) {
	o := &Order{
		status:    Processing,
		notes:     notes,
		createdAt: now,
		updatedAt: now,
		version:   1,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot carries the persisted state of an order for RestoreOrder.
type Snapshot struct {
	ID                   kernel.UUID
	CustomerID           string
	LineItems            []LineItem
	Notes                string
	Status               Status
	IsCancelled          bool
	IsPartiallyDelivered bool
	CancellationNote     string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DispatchedAt         *time.Time
	DeliveredAt          *time.Time
	Version              int
}

// RestoreOrder rebuilds an order loaded from a store. The snapshot is checked
// against every aggregate invariant so a corrupted record is never served.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		notes:                s.Notes,
		isCancelled:          s.IsCancelled,
		isPartiallyDelivered: s.IsPartiallyDelivered,
		cancellationNote:     s.CancellationNote,
		createdAt:            s.CreatedAt,
		updatedAt:            s.UpdatedAt,
		dispatchedAt:         cloneTime(s.DispatchedAt),
		deliveredAt:          cloneTime(s.DeliveredAt),
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setLineItems(s.LineItems),
		o.setStatus(s.Status),
		o.setVersion(s.Version),
	); err != nil {
		return nil, err
	}

	if err := o.checkInvariants(); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot returns the complete state of the order for persistence.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                   o.id,
		CustomerID:           o.customerID,
		LineItems:            slices.Clone(o.lineItems),
		Notes:                o.notes,
		Status:               o.status,
		IsCancelled:          o.isCancelled,
		IsPartiallyDelivered: o.isPartiallyDelivered,
		CancellationNote:     o.cancellationNote,
		CreatedAt:            o.createdAt,
		UpdatedAt:            o.updatedAt,
		DispatchedAt:         cloneTime(o.dispatchedAt),
		DeliveredAt:          cloneTime(o.deliveredAt),
		Version:              o.version,
	}
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() string {
	return o.customerID
}

// LineItems returns a copy of the line items in order.
func (o *Order) LineItems() []LineItem {
	return slices.Clone(o.lineItems)
}

// Notes returns the free-text notes.
func (o *Order) Notes() string {
	return o.notes
}

// Status returns the order's aggregate status.
func (o *Order) Status() Status {
	return o.status
}

// IsCancelled reports whether the order was cancelled.
func (o *Order) IsCancelled() bool {
	return o.isCancelled
}

// IsPartiallyDelivered reports whether some, but not all, line items were delivered.
func (o *Order) IsPartiallyDelivered() bool {
	return o.isPartiallyDelivered
}

// CancellationNote returns the note recorded when the order was cancelled.
func (o *Order) CancellationNote() string {
	return o.cancellationNote
}

// CreatedAt returns the time the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last change.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// DispatchedAt returns nil until the order is shipped.
func (o *Order) DispatchedAt() *time.Time {
	return cloneTime(o.dispatchedAt)
}

// DeliveredAt returns nil until the order is fully delivered.
func (o *Order) DeliveredAt() *time.Time {
	return cloneTime(o.deliveredAt)
}

// Version returns the optimistic concurrency token of the current state.
func (o *Order) Version() int {
	return o.version
}

// VendorIDs returns the distinct vendors owning line items, in item order.
func (o *Order) VendorIDs() []string {
	var ids []string
	for _, item := range o.lineItems {
		if !slices.Contains(ids, item.vendorID) {
			ids = append(ids, item.vendorID)
		}
	}
	return ids
}

// CanBeCancelled reports whether the customer-facing cancel is allowed.
func (o *Order) CanBeCancelled() bool {
	return o.status == Processing
}

// CanBeCancelledWithPrivilege reports whether a CSR or administrator may cancel.
func (o *Order) CanBeCancelledWithPrivilege() bool {
	return o.status != Delivered && !o.isCancelled
}

// CanBeUpdated reports whether line items and notes may be replaced.
func (o *Order) CanBeUpdated() bool {
	return o.status == Processing && !o.isCancelled
}

// CanBeShipped reports whether the order may be dispatched.
func (o *Order) CanBeShipped() bool {
	return o.status == Processing
}

// CanBeMarkedDelivered reports whether delivery confirmations are accepted.
func (o *Order) CanBeMarkedDelivered() bool {
	return o.status != Delivered && !o.isCancelled
}

// Update replaces the line items and notes wholesale.
//
// This method enforces the following business rules:
//   - The order must be Processing and not cancelled
//   - At least one line item is required
//   - Replaced items start over as Pending
//
// Status is left untouched.
func (o *Order) Update(lineItems []LineItem, notes string, now time.Time) error {
	if !o.CanBeUpdated() {
		return errs.NewStateIsInvalidError(
			"order",
			fmt.Sprintf("order cannot be updated after dispatch or cancellation, current status is %s", o.status),
		)
	}

	reset := make([]LineItem, len(lineItems))
	for i, item := range lineItems {
		item.status = ItemPending
		reset[i] = item
	}
	if err := o.setLineItems(reset); err != nil {
		return err
	}

	o.notes = notes
	o.touch(now)
	return nil
}

// Cancel moves the order to Cancelled.
//
// With privileged set, any order that is not Delivered and not already
// Cancelled may be cancelled. Without it only Processing orders may.
// Line item statuses are left as they are.
//
// Returns:
//   - nil on success, with CancellationNote set to note
//   - StateIsInvalidError naming the failed precondition otherwise
func (o *Order) Cancel(note string, privileged bool, now time.Time) error {
	newStatus, err := o.status.Cancel(privileged)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.isCancelled = true
	o.isPartiallyDelivered = false
	o.cancellationNote = note
	o.touch(now)
	return nil
}

// Ship moves a Processing order to Shipped and records DispatchedAt once.
func (o *Order) Ship(now time.Time) error {
	newStatus, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.status = newStatus
	if o.dispatchedAt == nil {
		o.dispatchedAt = &now
	}
	o.touch(now)
	return nil
}

// Deliver confirms delivery of the whole order. Every line item becomes
// Delivered and DeliveredAt is recorded if it was not already.
func (o *Order) Deliver(now time.Time) error {
	if err := o.validateDeliver(); err != nil {
		return err
	}

	for i := range o.lineItems {
		o.lineItems[i].markDelivered()
	}
	o.applyDerivedStatus(now)
	o.touch(now)
	return nil
}

// DeliverVendorItems confirms delivery of every line item supplied by vendorID.
// The aggregate status is then recomputed with DeriveAggregateStatus.
//
// Returns:
//   - ValueIsRequiredError when vendorID is blank
//   - StateIsInvalidError when the order is Delivered or Cancelled, or when
//     every item of the vendor is already Delivered
//   - ObjectNotFoundError when the vendor owns no line item of the order
func (o *Order) DeliverVendorItems(vendorID string, now time.Time) error {
	if strings.TrimSpace(vendorID) == "" {
		return errs.NewValueIsRequiredError("vendorId")
	}
	if err := o.validateDeliver(); err != nil {
		return err
	}

	matched, pending := 0, 0
	for _, item := range o.lineItems {
		if item.IsSuppliedBy(vendorID) {
			matched++
			if item.status != ItemDelivered {
				pending++
			}
		}
	}
	if matched == 0 {
		return errs.NewObjectNotFoundError("vendorId", vendorID)
	}
	if pending == 0 {
		return errs.NewStateIsInvalidError("order", fmt.Sprintf("items of vendor %s are already delivered", vendorID))
	}

	for i := range o.lineItems {
		if o.lineItems[i].IsSuppliedBy(vendorID) {
			o.lineItems[i].markDelivered()
		}
	}
	o.applyDerivedStatus(now)
	o.touch(now)
	return nil
}

// DeriveAggregateStatus computes the order status implied by its line items.
//
// Returns Delivered when every item is Delivered, PartiallyDelivered when at
// least one item is Delivered or PartiallyDelivered but not all are Delivered,
// and current otherwise: Processing, Shipped and Cancelled cannot be derived
// from item statuses alone.
func DeriveAggregateStatus(lineItems []LineItem, current Status) Status {
	if len(lineItems) == 0 {
		return current
	}

	allDelivered, anyOutcome := true, false
	for _, item := range lineItems {
		if item.status != ItemDelivered {
			allDelivered = false
		}
		if item.status.hasDeliveryOutcome() {
			anyOutcome = true
		}
	}

	switch {
	case allDelivered:
		return Delivered
	case anyOutcome:
		return PartiallyDelivered
	default:
		return current
	}
}

func (o *Order) validateDeliver() error {
	if o.isCancelled {
		return errs.NewStateIsInvalidError("order", "cannot deliver a cancelled order")
	}
	return o.status.ValidateDeliver()
}

func (o *Order) applyDerivedStatus(now time.Time) {
	o.status = DeriveAggregateStatus(o.lineItems, o.status)
	o.isPartiallyDelivered = o.status == PartiallyDelivered
	if o.status == Delivered && o.deliveredAt == nil {
		o.deliveredAt = &now
	}
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now
	o.version++
}

func (o *Order) checkInvariants() error {
	if o.isCancelled != (o.status == Cancelled) {
		return errs.NewValueIsInvalidErrorWithCause(
			"order is inconsistent",
			fmt.Errorf("status %s disagrees with cancelled flag %t", o.status, o.isCancelled),
		)
	}
	if o.isPartiallyDelivered != (o.status == PartiallyDelivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"order is inconsistent",
			fmt.Errorf("status %s disagrees with partially delivered flag %t", o.status, o.isPartiallyDelivered),
		)
	}

	derived := DeriveAggregateStatus(o.lineItems, Processing)
	switch o.status {
	case Delivered, PartiallyDelivered:
		if derived != o.status {
			return errs.NewValueIsInvalidErrorWithCause(
				"order is inconsistent",
				fmt.Errorf("status %s contradicts line items, which imply %s", o.status, derived),
			)
		}
	case Processing, Shipped:
		if derived != Processing {
			return errs.NewValueIsInvalidErrorWithCause(
				"order is inconsistent",
				fmt.Errorf("status %s with delivered line items", o.status),
			)
		}
	}

	if o.status == Shipped && o.dispatchedAt == nil {
		return errs.NewValueIsRequiredError("dispatchedAt")
	}
	if o.status == Delivered && o.deliveredAt == nil {
		return errs.NewValueIsRequiredError("deliveredAt")
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setLineItems(lineItems []LineItem) error {
	if len(lineItems) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}
	for i, item := range lineItems {
		if item.productID == "" || item.vendorID == "" || item.quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"lineItems",
				fmt.Errorf("line item %d must be created via NewLineItem", i),
			)
		}
	}
	o.lineItems = slices.Clone(lineItems)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is not greater than 0", version))
	}
	o.version = version
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
