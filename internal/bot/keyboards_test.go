package bot

import "testing"

func TestParseID(t *testing.T) {
	cases := []struct {
		arg  string
		want uint
	}{
		{"17", 17},
		{"0", 0},
		{"", 0},
		{"-5", 0},
		{"abc", 0},
	}
	for _, tc := range cases {
		if got := parseID(tc.arg); got != tc.want {
			t.Errorf("parseID(%q) = %d, want %d", tc.arg, got, tc.want)
		}
	}
}

func TestParseOffset(t *testing.T) {
	if got := parseOffset("20"); got != 20 {
		t.Errorf("parseOffset(\"20\") = %d, want 20", got)
	}
	if got := parseOffset("junk"); got != 0 {
		t.Errorf("parseOffset(\"junk\") = %d, want 0", got)
	}
}

func TestPagedListKeyboardNavigation(t *testing.T) {
	items := []listItem{{ID: 1, Label: "a"}, {ID: 2, Label: "b"}}

	// первая страница из многих: только "вперед" плюс кнопка меню
	kb := pagedListKeyboard(cbCategoryItem, cbCategoryPage, items, 0, 2, 10)
	if len(kb.InlineKeyboard) != 4 {
		t.Fatalf("rows = %d, want 4", len(kb.InlineKeyboard))
	}
	nav := kb.InlineKeyboard[2]
	if len(nav) != 1 || *nav[0].CallbackData != callbackData(cbCategoryPage, "2") {
		t.Errorf("unexpected nav row: %+v", nav)
	}

	// средняя страница: обе навигационные кнопки в одном ряду
	kb = pagedListKeyboard(cbCategoryItem, cbCategoryPage, items, 4, 2, 10)
	nav = kb.InlineKeyboard[2]
	if len(nav) != 2 {
		t.Fatalf("nav buttons = %d, want 2", len(nav))
	}
	if *nav[0].CallbackData != callbackData(cbCategoryPage, "2") {
		t.Errorf("prev offset = %s, want 2", *nav[0].CallbackData)
	}
	if *nav[1].CallbackData != callbackData(cbCategoryPage, "6") {
		t.Errorf("next offset = %s, want 6", *nav[1].CallbackData)
	}

	// единственная страница: навигации нет
	kb = pagedListKeyboard(cbCategoryItem, cbCategoryPage, items, 0, 5, 2)
	if len(kb.InlineKeyboard) != 3 {
		t.Errorf("rows = %d, want 3 (items + menu)", len(kb.InlineKeyboard))
	}

	// кнопка элемента несет его id
	item := kb.InlineKeyboard[0][0]
	if *item.CallbackData != callbackData(cbCategoryItem, "1") {
		t.Errorf("item callback = %s", *item.CallbackData)
	}
}
