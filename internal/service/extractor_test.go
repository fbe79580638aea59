package service

import (
	"strings"
	"testing"
)

func TestExtractFields_LabeledAnswer(t *testing.T) {
	answer := "學生名稱: 小明\n學科: 數學\n主題: 二次函數\n回覆: x=2或x=3"

	fields := ExtractFields(answer)

	if fields.StudentName != "小明" {
		t.Errorf("expected studentName 小明, got %q", fields.StudentName)
	}
	if fields.Subject != "數學" {
		t.Errorf("expected subject 數學, got %q", fields.Subject)
	}
	if fields.Topic != "二次函數" {
		t.Errorf("expected topic 二次函數, got %q", fields.Topic)
	}
}

func TestExtractFields_FullWidthColonAndSimplified(t *testing.T) {
	answer := "学生名称：王小華\n主题：一次函數"

	fields := ExtractFields(answer)

	if fields.StudentName != "王小華" {
		t.Errorf("expected studentName 王小華, got %q", fields.StudentName)
	}
	if fields.Topic != "一次函數" {
		t.Errorf("expected topic 一次函數, got %q", fields.Topic)
	}
	if fields.Subject != "數學" {
		t.Errorf("expected default subject, got %q", fields.Subject)
	}
}

func TestExtractFields_Defaults(t *testing.T) {
	fields := ExtractFields("請看以下解題步驟")

	if fields.StudentName != "匿名" {
		t.Errorf("expected anonymous sentinel, got %q", fields.StudentName)
	}
	if fields.Subject != "數學" {
		t.Errorf("expected default subject, got %q", fields.Subject)
	}
	if fields.Topic != "其他" {
		t.Errorf("expected unknown topic sentinel, got %q", fields.Topic)
	}
}

func TestExtractFields_KeywordFallback(t *testing.T) {
	cases := []struct {
		answer string
		topic  string
	}{
		{"這題用勾股定理求斜邊", "三角形"},
		{"求此直角三角形的面積", "三角形"},
		{"先算出斜率再代入", "一次函數"},
		{"拋物線的頂點在 (1,2)", "二次函數"},
		{"點落在第三象限", "坐標平面"},
		{"求擲骰子的機率", "機率統計"},
	}

	for _, tc := range cases {
		fields := ExtractFields(tc.answer)
		if fields.Topic != tc.topic {
			t.Errorf("answer %q: expected topic %q, got %q", tc.answer, tc.topic, fields.Topic)
		}
	}
}

func TestExtractFields_KeywordPriorityOrder(t *testing.T) {
	// 同时包含三角形与二次函數关键词时，规则表里排前面的生效
	fields := ExtractFields("這個三角形問題可以化成二次函數求解")

	if fields.Topic != "三角形" {
		t.Errorf("expected first matching rule 三角形, got %q", fields.Topic)
	}
}

func TestExtractFields_OverlongLabelDiscarded(t *testing.T) {
	longTopic := strings.Repeat("函數", 30) // 60 runes，超过主题阈值
	answer := "主題: " + longTopic + "\n這題其實是關於拋物線的"

	fields := ExtractFields(answer)

	// 超长标注值作废，回退到关键词推断
	if fields.Topic != "二次函數" {
		t.Errorf("expected keyword fallback 二次函數, got %q", fields.Topic)
	}

	longName := strings.Repeat("名", 31)
	fields = ExtractFields("學生名稱: " + longName)
	if fields.StudentName != "匿名" {
		t.Errorf("expected anonymous fallback for overlong name, got %q", fields.StudentName)
	}
}

func TestExtractFields_Deterministic(t *testing.T) {
	answer := "學生名稱: 小明\n這題用勾股定理"

	first := ExtractFields(answer)
	for i := 0; i < 10; i++ {
		if got := ExtractFields(answer); got != first {
			t.Fatalf("extraction not deterministic: %+v vs %+v", got, first)
		}
	}
}
