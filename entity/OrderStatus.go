package entity

// Order status values. An order starts PENDING and moves once to COMPLETE or
// CANCELLED.
const (
	OrderPending   = "PENDING"
	OrderComplete  = "COMPLETE"
	OrderCancelled = "CANCELLED"
)

// Worker account status.
const (
	WorkerActive      = "ACTIVE"
	WorkerDeactivated = "DEACTIVATED"
)

const (
	RoleAdmin     = "admin"
	RoleCashier   = "cashier"
	RoleInventory = "inventory"
)

// Audit action types written to the audit log.
const (
	ActionLogIn         = "LOG IN"
	ActionLogOut        = "LOG OUT"
	ActionCreateOrder   = "CREATE ORDER"
	ActionCompleteOrder = "COMPLETE ORDER"
	ActionCancelOrder   = "CANCEL ORDER"
	ActionCreateAccount = "CREATE ACCOUNT"
	ActionUpdateAccount = "UPDATE ACCOUNT"
	ActionCreateService = "CREATE SERVICE"
	ActionUpdateService = "UPDATE SERVICE"
	ActionDeleteService = "DELETE SERVICE"
	ActionCreateLaundry = "CREATE LAUNDRY TYPE"
	ActionUpdateLaundry = "UPDATE LAUNDRY TYPE"
	ActionDeleteLaundry = "DELETE LAUNDRY TYPE"
	ActionAddProduct    = "ADD PRODUCT"
	ActionEditProduct   = "EDIT PRODUCT"
	ActionAddStock      = "ADD STOCK"
)
