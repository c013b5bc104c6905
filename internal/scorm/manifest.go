package scorm

import (
	"fmt"
	"strings"
	"time"

	"github.com/v-scorm/scormgen/internal/course"
)

// Fixed entry names inside every package. The manifest, the player and the
// video sit at the archive root with no subdirectories.
const (
	ManifestName = "imsmanifest.xml"
	PlayerName   = "index.html"
	VideoName    = "video.mp4"
)

// xmlEscaper covers exactly the three metacharacters the manifest contract
// escapes. Other reserved constructs in titles pass through unsanitized.
var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeXML(s string) string { return xmlEscaper.Replace(s) }

// CourseIdentifier mints the manifest identifier from the build timestamp.
func CourseIdentifier(buildTime time.Time) string {
	return fmt.Sprintf("com.v-scorm.course.%d", buildTime.UnixMilli())
}

// BuildManifest renders the IMS Content Packaging manifest for the selected
// dialect: one organization, one item, one webcontent resource referencing
// the player and the video.
//
// The resource type attribute really does differ in case between dialects
// (adlcp:scormtype for 1.2, adlcp:scormType for 2004 3rd Edition); both
// target schemas require their own spelling.
func BuildManifest(s course.Settings, buildTime time.Time) string {
	id := CourseIdentifier(buildTime)
	title := escapeXML(s.CourseTitle)
	if s.ScormVersion == course.V12 {
		return fmt.Sprintf(manifest12, id, title, title)
	}
	return fmt.Sprintf(manifest2004, id, title, title)
}

const manifest12 = `<?xml version="1.0" standalone="no" ?>
<manifest identifier="%s" version="1.1"
          xmlns="http://www.imsproject.org/xsd/imscp_rootv1p1p2"
          xmlns:adlcp="http://www.adlnet.org/xsd/adlcp_rootv1p2"
          xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
          xsi:schemaLocation="http://www.imsproject.org/xsd/imscp_rootv1p1p2 imscp_rootv1p1p2.xsd http://www.imsglobal.org/xsd/imsmd_rootv1p2p1 imsmd_rootv1p2p1.xsd http://www.adlnet.org/xsd/adlcp_rootv1p2 adlcp_rootv1p2.xsd">
  <metadata>
    <schema>ADL SCORM</schema>
    <schemaversion>1.2</schemaversion>
  </metadata>
  <organizations default="org_1">
    <organization identifier="org_1">
      <title>%s</title>
      <item identifier="item_1" identifierref="res_1" isvisible="true">
        <title>%s</title>
      </item>
    </organization>
  </organizations>
  <resources>
    <resource identifier="res_1" type="webcontent" adlcp:scormtype="sco" href="index.html">
      <file href="index.html"/>
      <file href="video.mp4"/>
    </resource>
  </resources>
</manifest>`

const manifest2004 = `<?xml version="1.0" encoding="UTF-8"?>
<manifest identifier="%s" version="1.0"
          xmlns="http://www.imsglobal.org/xsd/imscp_v1p1"
          xmlns:adlcp="http://www.adlnet.org/xsd/adlcp_v1p3"
          xmlns:imsss="http://www.imsglobal.org/xsd/imsss"
          xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
          xsi:schemaLocation="http://www.imsglobal.org/xsd/imscp_v1p1 imscp_v1p1.xsd http://www.adlnet.org/xsd/adlcp_v1p3 adlcp_v1p3.xsd http://www.imsglobal.org/xsd/imsss imsss_v1p0.xsd">
  <metadata>
    <schema>ADL SCORM</schema>
    <schemaversion>2004 3rd Edition</schemaversion>
  </metadata>
  <organizations default="org_1">
    <organization identifier="org_1">
      <title>%s</title>
      <item identifier="item_1" identifierref="res_1">
        <title>%s</title>
      </item>
    </organization>
  </organizations>
  <resources>
    <resource identifier="res_1" type="webcontent" adlcp:scormType="sco" href="index.html">
      <file href="index.html"/>
      <file href="video.mp4"/>
    </resource>
  </resources>
</manifest>`
