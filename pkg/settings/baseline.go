package settings

// Default returns the built-in hardening baseline. It covers the registry
// side of a standard local-security pass: autorun, logon/UAC policy, LSA
// anonymous-access restrictions, credential caching, and a couple of
// well-known persistence spots that must stay empty.
//
// The catalog is constructed fresh on each call so callers can append or
// filter without affecting later runs.
func Default() Catalog {
	return Catalog{
		// Removable media
		{Key: `HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Policies\Explorer`,
			Name: "NoDriveTypeAutoRun", Value: DWord(255)},
		{Key: `HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Policies\Explorer`,
			Name: "NoAutorun", Value: DWord(1)},

		// Logon and UAC
		{Key: `HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Policies\System`,
			Name: "DisableCAD", Value: DWord(0)},
		{Key: `HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Policies\System`,
			Name: "DontDisplayLastUserName", Value: DWord(1)},
		{Key: `HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Policies\System`,
			Name: "EnableLUA", Value: DWord(1)},
		{Key: `HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Policies\System`,
			Name: "PromptOnSecureDesktop", Value: DWord(1)},
		{Key: `HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Policies\System`,
			Name: "ConsentPromptBehaviorAdmin", Value: DWord(2)},
		{Key: `HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Policies\System`,
			Name: "LegalNoticeCaption", Value: String("Authorized use only")},

		// LSA
		{Key: `HKLM\SYSTEM\CurrentControlSet\Control\Lsa`,
			Name: "LimitBlankPasswordUse", Value: DWord(1)},
		{Key: `HKLM\SYSTEM\CurrentControlSet\Control\Lsa`,
			Name: "RestrictAnonymousSAM", Value: DWord(1)},
		{Key: `HKLM\SYSTEM\CurrentControlSet\Control\Lsa`,
			Name: "RestrictAnonymous", Value: DWord(1)},
		{Key: `HKLM\SYSTEM\CurrentControlSet\Control\Lsa`,
			Name: "NoLMHash", Value: DWord(1)},
		{Key: `HKLM\SYSTEM\CurrentControlSet\Control\Lsa`,
			Name: "LmCompatibilityLevel", Value: DWord(5)},

		// Credential caching and memory hygiene
		{Key: `HKLM\SYSTEM\CurrentControlSet\Control\SecurityProviders\WDigest`,
			Name: "UseLogonCredential", Value: DWord(0)},
		{Key: `HKLM\SYSTEM\CurrentControlSet\Control\Session Manager\Memory Management`,
			Name: "ClearPageFileAtShutdown", Value: DWord(1)},
		{Key: `HKLM\SYSTEM\CurrentControlSet\Control\Session Manager\kernel`,
			Name: "DisableExceptionChainValidation", Value: DWord(0)},

		// Script host and SmartScreen
		{Key: `HKLM\SOFTWARE\Microsoft\Windows Script Host\Settings`,
			Name: "Enabled", Value: DWord(0)},
		{Key: `HKLM\SOFTWARE\Policies\Microsoft\Windows\System`,
			Name: "EnableSmartScreen", Value: DWord(1)},

		// Accessibility-binary hijacks must not have debuggers attached.
		{Ensure: Absent,
			Key:  `HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion\Image File Execution Options\sethc.exe`,
			Name: "Debugger"},
		{Ensure: Absent,
			Key:  `HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion\Image File Execution Options\utilman.exe`,
			Name: "Debugger"},
	}
}
