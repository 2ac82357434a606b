package generate

import "fmt"

// UserMessage is shown to the user whenever generation fails.
const UserMessage = "حدث خطأ أثناء إنشاء الأسئلة. قد يكون مفتاح API غير صالح أو أن الخدمة تواجه مشكلة. يرجى المحاولة مرة أخرى."

// GenerationError reports a failed generation request. Op names the failing
// step: request, status, stream, decode, schema, or validate.
type GenerationError struct {
	Op  string
	Err error
}

func (err *GenerationError) Error() string {
	return fmt.Sprintf("generate questions: %s: %v", err.Op, err.Err)
}

func (err *GenerationError) Unwrap() error {
	return err.Err
}

func fail(op string, err error) error {
	return &GenerationError{Op: op, Err: err}
}
