package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Name は前後の空白を落とし、連続する空白を1つにまとめ、NFC に正規化する。
// 完全一致で照合する名前・書名はこれを通してから保存・検索する。
func Name(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// ISBN はハイフンと空白を除き、末尾の x を大文字にする。
func ISBN(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == '-' || r == ' ':
		case r == 'x':
			b.WriteRune('X')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidISBN は ISBN-10 / ISBN-13 の形（桁数と文字種）だけを見る。チェックディジットは見ない。
func ValidISBN(s string) bool {
	switch len(s) {
	case 10:
		for i, r := range s {
			if r >= '0' && r <= '9' {
				continue
			}
			if r == 'X' && i == 9 {
				continue
			}
			return false
		}
		return true
	case 13:
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	default:
		return false
	}
}
