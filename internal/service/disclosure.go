package service

// RedactedPlaceholder - фиксированная заглушка вместо содержимого секретного
// поста. Никогда не содержит ни куска настоящего текста.
const RedactedPlaceholder = "This is a secret post. Enter the password to view it."

// Visibility - решение о раскрытии полей обращения.
type Visibility struct {
	ContentFull bool
	AnswerFull  bool
}

// Disclose - чистая функция политики раскрытия:
//
//	isSecret=false          -> всё открыто, verified не важен
//	isSecret=true, verified -> всё открыто
//	isSecret=true, !verified-> содержимое заменяется заглушкой, ответ скрыт
//
// Email и хэш пароля сюда не попадают вовсе, решение касается только
// content и answer.
func Disclose(isSecret, verified bool) Visibility {
	if !isSecret || verified {
		return Visibility{ContentFull: true, AnswerFull: true}
	}

	return Visibility{ContentFull: false, AnswerFull: false}
}
