package customers

// DB行に対応（sqlx スキャン用）
type customerRow struct {
	CustomerID    string `db:"customer_id"`
	Name          string `db:"name"`
	Email         string `db:"email"`
	HasPrivileges bool   `db:"has_privileges"`
}

// Customer はキャッシュにも JSON で載る。
type Customer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Privileges bool   `json:"privileges"`
}

func (r customerRow) toModel() Customer {
	return Customer{ID: r.CustomerID, Name: r.Name, Email: r.Email, Privileges: r.HasPrivileges}
}

func (c Customer) toRow() customerRow {
	return customerRow{CustomerID: c.ID, Name: c.Name, Email: c.Email, HasPrivileges: c.Privileges}
}

func (c Customer) toDTO() CustomerResponse {
	return CustomerResponse{CustomerID: c.ID, Name: c.Name, Email: c.Email, Privileges: c.Privileges}
}
