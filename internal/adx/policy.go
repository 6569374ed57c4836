package adx

import (
	"regexp"
	"strings"
)

var (
	ignorablePattern = regexp.MustCompile(`(?i)^(\.ds_store|thumbs\.db|desktop\.ini|\.git|\.svn|\._.*)$`)

	// Executables, shell scripts and server-side pages.
	deniedExtPattern = regexp.MustCompile(`(?i)\.(exe|com|bat|cmd|msi|dll|scr|pif|cpl|jar|vbs|vbe|wsf|wsh|ps1|psm1|sh|bash|csh|ksh|php\d?|phtml|asp|aspx|ascx|ashx|asmx|cer|jsp|jspx|cfm|cgi|pl|py|rb|shtml)$`)

	// Web, media and text files a browser is expected to load.
	allowedExtPattern = regexp.MustCompile(`(?i)\.(html?|xhtml|css|js|json|map|xml|xsl|txt|md|csv|svg|png|jpe?g|gif|bmp|ico|webp|tiff?|mp3|mp4|m4a|m4v|ogg|ogv|oga|wav|webm|avi|flv|swf|eot|ttf|otf|woff2?)$`)
)

// IsIgnorable reports whether name is operating-system or VCS metadata that is
// never indexed nor packaged.
func IsIgnorable(name string) bool {
	return ignorablePattern.MatchString(name)
}

// ExtensionDenied reports whether name carries an executable or server-side
// extension.
func ExtensionDenied(name string) bool {
	return deniedExtPattern.MatchString(name)
}

// ExtensionAllowed reports whether name carries a known-safe extension.
func ExtensionAllowed(name string) bool {
	return allowedExtPattern.MatchString(name)
}

// IsPackagedRootFile reports whether a file at the project root goes into the
// archive: the manifest plus readme* and changelog*.
func IsPackagedRootFile(name string) bool {
	lower := strings.ToLower(name)
	return lower == ConfigFileName ||
		strings.HasPrefix(lower, "readme") ||
		strings.HasPrefix(lower, "changelog")
}
