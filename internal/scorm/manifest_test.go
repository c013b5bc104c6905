package scorm

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/v-scorm/scormgen/internal/course"
)

func settingsFor(v course.Version, title string) course.Settings {
	return course.Settings{
		ScormVersion: v,
		CourseTitle:  title,
		NumQuestions: 10,
		PassingScore: 80,
	}
}

func TestManifestDialectAttributes(t *testing.T) {
	now := time.Now()

	m12 := BuildManifest(settingsFor(course.V12, "Corso"), now)
	if !strings.Contains(m12, `adlcp:scormtype="sco"`) {
		t.Fatalf("1.2 manifest missing lowercase scormtype attribute")
	}
	if strings.Contains(m12, "scormType") {
		t.Fatalf("1.2 manifest must not use the 2004 scormType spelling")
	}
	if strings.Contains(m12, "imsss") {
		t.Fatalf("1.2 manifest must not declare the imsss namespace")
	}
	if !strings.Contains(m12, "<schemaversion>1.2</schemaversion>") {
		t.Fatalf("1.2 manifest missing schema version")
	}

	m2004 := BuildManifest(settingsFor(course.V2004, "Corso"), now)
	if !strings.Contains(m2004, `adlcp:scormType="sco"`) {
		t.Fatalf("2004 manifest missing capitalized scormType attribute")
	}
	if strings.Contains(m2004, "scormtype=") {
		t.Fatalf("2004 manifest must not use the 1.2 scormtype spelling")
	}
	if !strings.Contains(m2004, `xmlns:imsss="http://www.imsglobal.org/xsd/imsss"`) {
		t.Fatalf("2004 manifest missing imsss namespace")
	}
	if !strings.Contains(m2004, "<schemaversion>2004 3rd Edition</schemaversion>") {
		t.Fatalf("2004 manifest missing schema version")
	}
}

func TestManifestReferencesPlayerAndVideo(t *testing.T) {
	m := BuildManifest(settingsFor(course.V12, "Corso"), time.Now())
	for _, want := range []string{`href="index.html"`, `<file href="video.mp4"/>`, `type="webcontent"`} {
		if !strings.Contains(m, want) {
			t.Fatalf("manifest missing %s", want)
		}
	}
}

func TestManifestTitleEscaping(t *testing.T) {
	title := `R&D <Lab> "avanzato"`
	for _, v := range []course.Version{course.V12, course.V2004} {
		m := BuildManifest(settingsFor(v, title), time.Now())
		if strings.Contains(m, "<Lab>") {
			t.Fatalf("%s manifest contains unescaped title markup", v)
		}
		if !strings.Contains(m, "R&amp;D &lt;Lab&gt;") {
			t.Fatalf("%s manifest missing escaped entities", v)
		}

		// Re-parsing must yield the original title back.
		var doc struct {
			Organizations struct {
				Organization struct {
					Title string `xml:"title"`
				} `xml:"organization"`
			} `xml:"organizations"`
		}
		if err := xml.Unmarshal([]byte(m), &doc); err != nil {
			t.Fatalf("%s manifest does not parse: %v", v, err)
		}
		if got := doc.Organizations.Organization.Title; got != title {
			t.Fatalf("%s round-tripped title = %q, want %q", v, got, title)
		}
	}
}

func TestCourseIdentifierDeterministic(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	if got := CourseIdentifier(at); got != "com.v-scorm.course.1700000000000" {
		t.Fatalf("identifier = %q", got)
	}
	if CourseIdentifier(at) != CourseIdentifier(at) {
		t.Fatalf("identifier not deterministic for a fixed timestamp")
	}
}
