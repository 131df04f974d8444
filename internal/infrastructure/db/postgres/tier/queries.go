package tier

const (
	tierColumns = `uuid, name, description, file_size_limit_gb, validity_hours, price, currency_code,
		  is_active, is_default, created_at, updated_at`

	SelectTierByID = `
		SELECT ` + tierColumns + `
		FROM pricing_tiers
		WHERE uuid = $1
	`
	SelectActiveTiers = `
		SELECT ` + tierColumns + `
		FROM pricing_tiers
		WHERE is_active
		ORDER BY price, name
	`
	SelectDefaultTier = `
		SELECT ` + tierColumns + `
		FROM pricing_tiers
		WHERE is_default AND is_active
	`
	UpsertTierByName = `
		INSERT INTO pricing_tiers (name, description, file_size_limit_gb, validity_hours, price, currency_code, is_active, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO UPDATE
		SET description = EXCLUDED.description,
		    file_size_limit_gb = EXCLUDED.file_size_limit_gb,
		    validity_hours = EXCLUDED.validity_hours,
		    price = EXCLUDED.price,
		    currency_code = EXCLUDED.currency_code,
		    is_active = EXCLUDED.is_active,
		    is_default = EXCLUDED.is_default,
		    updated_at = now()
		RETURNING ` + tierColumns
)
