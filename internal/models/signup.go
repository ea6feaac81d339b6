package models

// SignUpInput is the sign-up form as submitted by the browser
type SignUpInput struct {
	FullName        string `form:"fullName" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"min=8"`
	ConfirmPassword string `form:"confirmPassword" validate:"eqfield=Password"`
}

// Request strips the confirmation field; the backend never sees it.
func (in SignUpInput) Request() SignUpRequest {
	return SignUpRequest{
		FullName: in.FullName,
		Email:    in.Email,
		Password: in.Password,
	}
}

// SignUpRequest is the JSON body of POST /api/v1/user/signUp
type SignUpRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SubmissionState tracks a single sign-up attempt
type SubmissionState struct {
	Loading      bool
	ErrorMessage string
}

// Begin resets the state for a new attempt.
func (s *SubmissionState) Begin() {
	s.Loading = true
	s.ErrorMessage = ""
}

func (s *SubmissionState) Fail(message string) {
	s.ErrorMessage = message
}

// Done clears the loading flag. Callers defer it so it runs on every outcome.
func (s *SubmissionState) Done() {
	s.Loading = false
}
