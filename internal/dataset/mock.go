package dataset

import (
	"time"

	"admindash/internal/navigator"
	"admindash/internal/query"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// ActivityLogs is the built-in activity log collection
func ActivityLogs() []query.Record {
	return []query.Record{
		{"id": 1, "timestamp": ts("2024-01-15T10:30:00Z"), "user": "john.doe@example.com", "action": "Logged in", "type": "login", "severity": "info", "ipAddress": "192.168.1.100"},
		{"id": 2, "timestamp": ts("2024-01-15T11:05:00Z"), "user": "admin@example.com", "action": "Updated user permissions", "type": "settings", "severity": "info", "ipAddress": "192.168.1.1"},
		{"id": 3, "timestamp": ts("2024-01-15T11:45:00Z"), "user": "jane.smith@example.com", "action": "Uploaded file report.pdf", "type": "file", "severity": "success", "ipAddress": "10.0.0.15"},
		{"id": 4, "timestamp": ts("2024-01-15T12:10:00Z"), "user": "unknown", "action": "Failed login attempt", "type": "security", "severity": "warning", "ipAddress": "203.0.113.42"},
		{"id": 5, "timestamp": ts("2024-01-15T13:20:00Z"), "user": "mike.wilson@example.com", "action": "Deleted folder Archive", "type": "file", "severity": "info", "ipAddress": "192.168.1.105"},
		{"id": 6, "timestamp": ts("2024-01-15T14:00:00Z"), "user": "system", "action": "Granted Admin role to sarah.lee", "type": "settings", "severity": "info", "ipAddress": "127.0.0.1"},
		{"id": 7, "timestamp": ts("2024-01-15T15:30:00Z"), "user": "sarah.lee@example.com", "action": "Multiple failed password resets", "type": "security", "severity": "critical", "ipAddress": "198.51.100.7"},
		{"id": 8, "timestamp": ts("2024-01-15T16:45:00Z"), "user": "john.doe@example.com", "action": "Logged out", "type": "login", "severity": "info", "ipAddress": "192.168.1.100"},
	}
}

// AuditLogs is the built-in audit trail
func AuditLogs() []query.Record {
	return []query.Record{
		{"id": 101, "timestamp": ts("2024-01-14T08:12:00Z"), "actor": "admin@example.com", "action": "user.create", "resource": "user:jane.smith", "category": "user", "status": "success", "ipAddress": "192.168.1.1"},
		{"id": 102, "timestamp": ts("2024-01-14T09:40:00Z"), "actor": "admin@example.com", "action": "role.assign", "resource": "user:jane.smith", "category": "user", "status": "success", "ipAddress": "192.168.1.1"},
		{"id": 103, "timestamp": ts("2024-01-14T11:02:00Z"), "actor": "jane.smith@example.com", "action": "file.upload", "resource": "file:/Documents/Q4 Report.pdf", "category": "file", "status": "success", "ipAddress": "10.0.0.15"},
		{"id": 104, "timestamp": ts("2024-01-14T13:27:00Z"), "actor": "unknown", "action": "auth.login", "resource": "user:admin", "category": "auth", "status": "failure", "ipAddress": "203.0.113.42"},
		{"id": 105, "timestamp": ts("2024-01-14T15:55:00Z"), "actor": "mike.wilson@example.com", "action": "file.delete", "resource": "folder:/Archive", "category": "file", "status": "success", "ipAddress": "192.168.1.105"},
		{"id": 106, "timestamp": ts("2024-01-15T07:30:00Z"), "actor": "system", "action": "settings.update", "resource": "settings:notifications", "category": "settings", "status": "success", "ipAddress": "127.0.0.1"},
		{"id": 107, "timestamp": ts("2024-01-15T10:18:00Z"), "actor": "sarah.lee@example.com", "action": "auth.password_reset", "resource": "user:sarah.lee", "category": "auth", "status": "failure", "ipAddress": "198.51.100.7"},
		{"id": 108, "timestamp": ts("2024-01-15T12:44:00Z"), "actor": "admin@example.com", "action": "user.suspend", "resource": "user:mike.wilson", "category": "user", "status": "success", "ipAddress": "192.168.1.1"},
	}
}

// Contacts is the built-in contact list before annotation. Two entries share
// an email and one address is malformed.
func Contacts() []query.Record {
	return []query.Record{
		{"id": 1, "name": "John Doe", "email": "john.doe@example.com", "phone": "+1 (555) 010-1001", "company": "Acme Corp", "group": "client", "createdAt": ts("2023-11-02T09:00:00Z")},
		{"id": 2, "name": "Jane Smith", "email": "jane.smith@example.com", "phone": "+1 (555) 010-1002", "company": "Globex", "group": "partner", "createdAt": ts("2023-11-15T14:30:00Z")},
		{"id": 3, "name": "Mike Wilson", "email": "mike.wilson@example", "phone": "+1 (555) 010-1003", "company": "Initech", "group": "vendor", "createdAt": ts("2023-12-01T10:15:00Z")},
		{"id": 4, "name": "Sarah Lee", "email": "sarah.lee@example.com", "phone": "+1 (555) 010-1004", "company": "Acme Corp", "group": "internal", "createdAt": ts("2023-12-20T16:45:00Z")},
		{"id": 5, "name": "Johnny Doe", "email": "John.Doe@example.com", "phone": "+1 (555) 010-1099", "company": "Acme Corp", "group": "client", "createdAt": ts("2024-01-05T08:20:00Z")},
		{"id": 6, "name": "Emily Chen", "email": "emily.chen@example.com", "phone": "555-010-1006", "company": "Umbrella", "group": "client", "createdAt": ts("2024-01-08T11:00:00Z")},
		{"id": 7, "name": "David Park", "email": "david.park@example.com", "phone": "(555) 010-1006", "company": "Globex", "group": "vendor", "createdAt": ts("2024-01-10T13:10:00Z")},
		{"id": 8, "name": "Lisa Brown", "email": "lisa brown@example.com", "phone": "+1 (555) 010-1008", "company": "Initech", "group": "partner", "createdAt": ts("2024-01-12T15:25:00Z")},
	}
}

// FileNodes is the built-in file manager tree. Paths are left empty and
// derived on load.
func FileNodes() []navigator.Node {
	day := func(s string) time.Time { return ts(s + "T09:00:00Z") }
	folder := func(id, name, parent string, items int, modified string) navigator.Node {
		n := navigator.Node{ID: id, Name: name, Kind: navigator.Folder, ItemCount: items, Modified: day(modified)}
		if parent != "" {
			n.ParentID = navigator.Ref(parent)
		}
		return n
	}
	file := func(id, name, parent string, size int64, modified string) navigator.Node {
		return navigator.Node{ID: id, Name: name, ParentID: navigator.Ref(parent), Kind: navigator.File, Size: size, Modified: day(modified)}
	}
	return []navigator.Node{
		folder("root", "Home", "", 5, "2024-01-15"),
		folder("1", "Documents", "root", 3, "2024-01-14"),
		folder("2", "Images", "root", 2, "2024-01-12"),
		folder("3", "Projects", "root", 2, "2024-01-10"),
		folder("4", "Archive", "root", 1, "2023-12-01"),
		file("5", "README.md", "root", 2_150, "2024-01-02"),
		file("11", "Q4 Report.pdf", "1", 2_457_600, "2024-01-14"),
		file("12", "Budget 2024.xlsx", "1", 856_064, "2024-01-11"),
		folder("13", "Contracts", "1", 1, "2024-01-08"),
		file("131", "Acme NDA.pdf", "13", 312_000, "2024-01-08"),
		file("21", "logo.png", "2", 45_056, "2024-01-12"),
		file("22", "banner.jpg", "2", 1_258_291, "2024-01-09"),
		folder("31", "website", "3", 2, "2024-01-10"),
		file("311", "index.html", "31", 8_192, "2024-01-10"),
		file("312", "styles.css", "31", 4_096, "2024-01-09"),
		file("32", "roadmap.md", "3", 6_144, "2024-01-07"),
		file("41", "2023 backup.zip", "4", 104_857_600, "2023-12-01"),
	}
}
