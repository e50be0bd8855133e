package customers

// 登録時は常に貸出権限あり
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

type UpdatePrivilegesRequest struct {
	Privileges *bool `json:"privileges" binding:"required"`
}

type CustomerResponse struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Privileges bool   `json:"privileges"`
}
