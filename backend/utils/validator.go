package utils

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidateStruct прогоняет структуру через validator/v10 и возвращает
// карту поле -> нарушенное правило (nil, если всё в порядке)
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
