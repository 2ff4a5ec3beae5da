// Package i18n holds the UI string tables. English and Mongolian ship by
// default; unknown languages fall back to English, unknown keys to the key
// itself so missing entries are visible rather than blank.
package i18n

const (
	LangEN = "en"
	LangMN = "mn"
)

var tables = map[string]map[string]string{
	LangEN: {
		"dashboard":      "Dashboard",
		"taskList":       "Task List",
		"analytics":      "Analytics",
		"settings":       "Settings",
		"calendar":       "Calendar",
		"search":         "Search...",
		"createTask":     "Create new task",
		"taskTitle":      "Task Title",
		"taskDesc":       "Description",
		"dueDate":        "Due Date",
		"priority":       "Priority",
		"category":       "Category",
		"low":            "Low",
		"medium":         "Medium",
		"high":           "High",
		"work":           "Work",
		"personal":       "Personal",
		"urgent":         "Urgent",
		"todo":           "To Do",
		"inprogress":     "In Progress",
		"complete":       "Complete",
		"completed":      "Completed",
		"noTasks":        "No tasks yet. Create your first task!",
		"noResults":      "No results found",
		"taskProgress":   "Task Progress",
		"project":        "Project",
		"language":       "Language",
		"theme":          "Theme",
		"light":          "Light",
		"dark":           "Dark",
		"exportTasks":    "Export tasks",
		"importTasks":    "Import tasks",
		"addNote":        "Add note",
		"deleteNote":     "Delete note",
		"noNotes":        "No notes for this day",
		"moveToTaskList": "Move to task list",
	},
	LangMN: {
		"dashboard":      "Хяналтын самбар",
		"taskList":       "Даалгаврын жагсаалт",
		"analytics":      "Аналитик",
		"settings":       "Тохиргоо",
		"calendar":       "Хуанли",
		"search":         "Хайх...",
		"createTask":     "Шинэ даалгавар үүсгэх",
		"taskTitle":      "Даалгаврын нэр",
		"taskDesc":       "Тайлбар",
		"dueDate":        "Дуусах огноо",
		"priority":       "Ач холбогдол",
		"category":       "Ангилал",
		"low":            "Бага",
		"medium":         "Дунд",
		"high":           "Өндөр",
		"work":           "Ажил",
		"personal":       "Хувийн",
		"urgent":         "Яаралтай",
		"todo":           "Хийх",
		"inprogress":     "Хийгдэж буй",
		"complete":       "Дууссан",
		"completed":      "Дууссан",
		"noTasks":        "Даалгавар алга. Эхний даалгавраа үүсгээрэй!",
		"noResults":      "Үр дүн олдсонгүй",
		"taskProgress":   "Даалгаврын явц",
		"project":        "Төсөл",
		"language":       "Хэл",
		"theme":          "Загвар",
		"light":          "Цайвар",
		"dark":           "Бараан",
		"exportTasks":    "Даалгавар экспортлох",
		"importTasks":    "Даалгавар импортлох",
		"addNote":        "Тэмдэглэл нэмэх",
		"deleteNote":     "Тэмдэглэл устгах",
		"noNotes":        "Энэ өдөр тэмдэглэл алга",
		"moveToTaskList": "Жагсаалт руу шилжүүлэх",
	},
}

// T translates key for the given language.
func T(lang, key string) string {
	table, found := tables[lang]
	if !found {
		table = tables[LangEN]
	}
	if s, found := table[key]; found {
		return s
	}
	if s, found := tables[LangEN][key]; found {
		return s
	}
	return key
}

// Supported lists the available language codes.
func Supported() []string {
	return []string{LangEN, LangMN}
}
