package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "tag").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "duplicate_key":
			return "キーが重複しています"
		case "discriminator_missing":
			return "判別キーが不足しています"
		case "discriminator_unknown":
			return "未知のバリアントです"
		case "union_no_match":
			return "どのバリアントにも一致しません"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required property missing"
		case "duplicate_key":
			return "duplicate key"
		case "discriminator_missing":
			return "discriminator missing"
		case "discriminator_unknown":
			return "unknown variant"
		case "union_no_match":
			return "no union member matched"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in dictionary language ("en" or "ja").
func SetLanguage(lang string) {
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the translator entirely; nil restores the default.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T translates an issue code with optional metadata.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
