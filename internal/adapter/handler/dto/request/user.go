package request

// Field validation is intentionally not expressed as binding tags: the user
// service checks fields in a documented order and reports the first failure,
// which tag-based validation cannot guarantee.

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest uses pointers so an absent field can be told apart from
// an explicitly empty one; only supplied fields are changed.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}
