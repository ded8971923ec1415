package appdownload

// Links is the single app_downloads configuration row. An empty string
// means the storefront is not configured.
type Links struct {
	IOSAppStore           string `db:"ios_app_store" json:"ios_app_store"`
	AndroidGooglePlay     string `db:"android_google_play" json:"android_google_play"`
	AndroidDirectDownload string `db:"android_direct_download" json:"android_direct_download"`
	HuaweiAppGallery      string `db:"huawei_app_gallery" json:"huawei_app_gallery"`
	XiaomiAppStore        string `db:"xiaomi_app_store" json:"xiaomi_app_store"`
	OppoAppStore          string `db:"oppo_app_store" json:"oppo_app_store"`
	VivoAppStore          string `db:"vivo_app_store" json:"vivo_app_store"`
	SamsungGalaxyStore    string `db:"samsung_galaxy_store" json:"samsung_galaxy_store"`
}
