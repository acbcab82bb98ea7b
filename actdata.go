package actgrid

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Подготовка данных акта к подстановке в плейсхолдеры при экспорте.

// fenceRx извлекает JSON, обёрнутый в тройные кавычки ``` ... ```.
var fenceRx = regexp.MustCompile("(?s)```[a-zA-Z]*\\n(.*?)```")

func sanitizeJSONBlock(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	m := fenceRx.FindStringSubmatch(s)
	if len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return s
}

// ParseActData разбирает JSON-фрагменты данных акта и сливает их в единое
// окружение для вычисления выражений: при совпадении ключей побеждает первый
// источник. Невалидные фрагменты пропускаются.
func ParseActData(payloads []string) map[string]interface{} {
	out := map[string]interface{}{}
	for _, s := range payloads {
		s = sanitizeJSONBlock(s)
		if strings.TrimSpace(s) == "" {
			continue
		}
		var v map[string]interface{}
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			continue
		}
		for k, val := range v {
			if _, ok := out[k]; !ok {
				out[k] = deepNormalize(val)
			}
		}
	}
	return out
}

func deepNormalize(v interface{}) interface{} {
	switch vv := v.(type) {
	case []interface{}:
		for i := range vv {
			vv[i] = deepNormalize(vv[i])
		}
		return vv
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = deepNormalize(val)
		}
		return vv
	default:
		return vv
	}
}
