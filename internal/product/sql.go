package product

const getAllProductsSQL = `
SELECT id, name, original_price, current_price, image_url,
       COALESCE(purchase_link, '') AS purchase_link,
       COALESCE(inquiry_link, '') AS inquiry_link,
       created_at,
       COALESCE(is_recommended, 0) AS is_recommended
FROM products
`

const getCampaignProductsSQL = `
SELECT id, name, original_price, current_price, image_url,
       COALESCE(purchase_link, '') AS purchase_link,
       COALESCE(inquiry_link, '') AS inquiry_link,
       created_at,
       COALESCE(is_recommended, 0) AS is_recommended
FROM campaign_products
ORDER BY created_at DESC
`

// Postgres variants cast numeric prices to float8 and uuid ids to text.

const pgGetAllProductsSQL = `
SELECT id::text AS id, name, original_price::float8 AS original_price, current_price::float8 AS current_price, image_url,
       COALESCE(purchase_link, '') AS purchase_link,
       COALESCE(inquiry_link, '') AS inquiry_link,
       created_at,
       COALESCE(is_recommended, false) AS is_recommended
FROM products
`

const pgGetCampaignProductsSQL = `
SELECT id::text AS id, name, original_price::float8 AS original_price, current_price::float8 AS current_price, image_url,
       COALESCE(purchase_link, '') AS purchase_link,
       COALESCE(inquiry_link, '') AS inquiry_link,
       created_at,
       COALESCE(is_recommended, false) AS is_recommended
FROM campaign_products
ORDER BY created_at DESC
`
