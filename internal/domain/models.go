package domain

// Models lists every persisted entity in migration order.
func Models() []any {
	return []any{
		&Tenant{},
		&User{},
		&ServiceProvider{},
		&ProviderStaff{},
		&ServiceCategory{},
		&Service{},
		&ServiceAddon{},
		&Booking{},
		&BookingAddon{},
		&Payment{},
		&Wallet{},
		&WalletTransaction{},
		&Review{},
		&AuditLog{},
	}
}
