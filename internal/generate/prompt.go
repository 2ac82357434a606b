package generate

import (
	"fmt"

	"quizgen/internal/question"
)

// MinCount and MaxCount bound the number of questions per request.
const (
	MinCount = 1
	MaxCount = 10
)

// ClampCount forces count into [MinCount, MaxCount].
func ClampCount(count int) int {
	return max(MinCount, min(MaxCount, count))
}

func typeDescription(t question.Type) string {
	switch t {
	case question.MultipleChoice:
		return "سؤال اختيار من متعدد بأربعة خيارات، واحد منها فقط صحيح."
	case question.TrueFalse:
		return "سؤال صواب أو خطأ."
	case question.FillInTheBlank:
		return "سؤال أكمل الفراغ حيث يجب ملء كلمة أو عبارة قصيرة مفقودة."
	case question.Matching:
		return "سؤال مطابقة حيث يجب على الطالب مطابقة العناصر من قائمتين."
	case question.CauseAndEffect:
		return "سؤال سبب ونتيجة لاختبار فهم العلاقات السببية (بتنسيق اختيار من متعدد)."
	default:
		return "سؤال عام."
	}
}

// BuildPrompt renders the instruction sent to the model. Questions are always
// requested in Modern Standard Arabic for grade-12 students.
func BuildPrompt(text string, t question.Type, count int) string {
	return fmt.Sprintf(`استنادًا إلى النص التالي، قم بإنشاء %d سؤال/أسئلة من نوع "%s". تأكد من أن الأسئلة والإجابات باللغة العربية الفصحى ومناسبة لطلاب الصف الثاني عشر.
أعد النتيجة بصيغة JSON فقط على شكل كائن {"questions": [...]} حيث تكون قيمة "questionType" لكل سؤال هي "%s".

النص:
---
%s
---
`, count, typeDescription(t), t, text)
}
