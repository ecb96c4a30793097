package domain

// Role роль пользователя
type Role string

const (
	RoleClient   Role = "client"
	RoleOperator Role = "operator"
	RoleSupplier Role = "supplier"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleOperator, RoleSupplier:
		return true
	default:
		return false
	}
}

// RequestType тип складской заявки
type RequestType string

const (
	RequestTypeReceiving RequestType = "receiving"
	RequestTypeShipping  RequestType = "shipping"
	RequestTypeInventory RequestType = "inventory"
)

func (t RequestType) IsValid() bool {
	switch t {
	case RequestTypeReceiving, RequestTypeShipping, RequestTypeInventory:
		return true
	default:
		return false
	}
}

// RequestStatus статус заявки. Переходы не ограничены: любой статус в любой.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusCompleted, RequestStatusCancelled:
		return true
	default:
		return false
	}
}

// RequestStatuses все статусы заявки в порядке отображения
var RequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusInProgress,
	RequestStatusCompleted,
	RequestStatusCancelled,
}

// ProductStatus статус согласования товара
type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "pending"
	ProductStatusApproved ProductStatus = "approved"
	ProductStatusRejected ProductStatus = "rejected"
)

func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusPending, ProductStatusApproved, ProductStatusRejected:
		return true
	default:
		return false
	}
}

// IsFinal approved и rejected терминальные
func (s ProductStatus) IsFinal() bool {
	return s == ProductStatusApproved || s == ProductStatusRejected
}

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// ContractorKind вид контрагента
type ContractorKind string

const (
	ContractorSupplier ContractorKind = "supplier"
	ContractorClient   ContractorKind = "client"
)

func (k ContractorKind) IsValid() bool {
	return k == ContractorSupplier || k == ContractorClient
}
