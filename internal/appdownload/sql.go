package appdownload

// LIMIT 2 is enough to tell "exactly one row" apart from "more than one".
const getLinksSQL = `
SELECT COALESCE(ios_app_store, '') AS ios_app_store,
       COALESCE(android_google_play, '') AS android_google_play,
       COALESCE(android_direct_download, '') AS android_direct_download,
       COALESCE(huawei_app_gallery, '') AS huawei_app_gallery,
       COALESCE(xiaomi_app_store, '') AS xiaomi_app_store,
       COALESCE(oppo_app_store, '') AS oppo_app_store,
       COALESCE(vivo_app_store, '') AS vivo_app_store,
       COALESCE(samsung_galaxy_store, '') AS samsung_galaxy_store
FROM app_downloads
LIMIT 2
`
