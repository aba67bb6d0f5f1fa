package entity

// Tables lists every model migrated at startup.
var Tables = []any{
	&Role{},
	&Worker{},
	&LaundryType{},
	&Service{},
	&ProductItem{},
	&ProductEntry{},
	&Order{},
	&AuditLog{},
}
