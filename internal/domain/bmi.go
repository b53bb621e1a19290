package domain

// BMIRequest carries a weight in kilograms and a height in meters. Only
// presence is checked here; the height guard belongs to the calculator.
type BMIRequest struct {
	Weight *float64 `json:"weight" validate:"required"`
	Height *float64 `json:"height" validate:"required"`
}

type BMIResponse struct {
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	BMI    float64 `json:"bmi"`
}
